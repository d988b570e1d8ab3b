package dag

import (
	"fmt"
	"strings"
)

// CycleError lists the groups of nodes that depend on each other.
type CycleError struct {
	Groups [][]string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Groups))
	for i, grp := range e.Groups {
		parts[i] = "[" + strings.Join(grp, " -> ") + "]"
	}
	return fmt.Sprintf("cycle detected involving %d group(s): %s", len(e.Groups), strings.Join(parts, ", "))
}
