package node

import (
	"fmt"
	"slices"
	"strings"
)

// Labels returns the node's labels in insertion order.
func (n *Node) Labels() []string {
	return slices.Clone(n.labels)
}

// AddLabel adds a "type:value" label. A type may carry several values.
// Adding a label twice is a no-op.
func (n *Node) AddLabel(label string) error {
	if _, _, err := splitLabel(label); err != nil {
		return err
	}
	if !slices.Contains(n.labels, label) {
		n.labels = append(n.labels, label)
	}
	return nil
}

// RemoveLabel drops label if present.
func (n *Node) RemoveLabel(label string) {
	n.labels = slices.DeleteFunc(n.labels, func(l string) bool { return l == label })
}

// HasLabel reports whether the exact label is set.
func (n *Node) HasLabel(label string) bool {
	return slices.Contains(n.labels, label)
}

// HasLabelType reports whether any label of type t is set.
func (n *Node) HasLabelType(t string) bool {
	return len(n.AllOfType(t)) > 0
}

// AllOfType returns the values of every label of type t.
func (n *Node) AllOfType(t string) []string {
	var out []string
	for _, l := range n.labels {
		lt, v, err := splitLabel(l)
		if err == nil && lt == t {
			out = append(out, v)
		}
	}
	return out
}

// Type returns the first value of a label of type t, or "".
func (n *Node) Type(t string) string {
	if vs := n.AllOfType(t); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func splitLabel(label string) (string, string, error) {
	t, v, ok := strings.Cut(label, ":")
	if !ok || t == "" || v == "" {
		return "", "", fmt.Errorf("invalid label %q: expected \"type:value\"", label)
	}
	return t, v, nil
}
