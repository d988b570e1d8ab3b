// internal/nodeid/generate.go
package nodeid

import "github.com/google/uuid"

// Length is the size of a generated identifier.
const Length = 16

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// New returns a fresh random identifier.
func New() string {
	u := uuid.New()
	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[u[i]&63]
	}
	return string(buf)
}
