// internal/nodeid/parser_test.go
package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		rawID     string
		expectErr bool
	}{
		{name: "letters", rawID: "speed", expectErr: false},
		{name: "mixed", rawID: "Node_01-b", expectErr: false},
		{name: "generated", rawID: New(), expectErr: false},
		{name: "error - empty", rawID: "", expectErr: true},
		{name: "error - dot", rawID: "a.b", expectErr: true},
		{name: "error - space", rawID: "a b", expectErr: true},
		{name: "error - unicode", rawID: "ключ", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.rawID)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := New()
		require.Len(t, id, Length)
		require.NoError(t, Validate(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
