// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
)

// idRegex matches a well-formed identifier.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate reports whether rawID can be used as a node identifier.
func Validate(rawID string) error {
	if rawID == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if !idRegex.MatchString(rawID) {
		return fmt.Errorf("invalid identifier %q: only letters, digits, '_' and '-' are allowed", rawID)
	}
	return nil
}
