// Package gedcom parses and serializes the GEDCOM-style line format that
// stores the place registry. Each line is `LEVEL [XREF] TAG [VALUE]`;
// hierarchy is encoded purely by the level numbers, never by indentation.
// The package reconstructs a forest of records from the line sequence and
// renders it back byte-identically for subtrees no merge has touched.
package gedcom

import (
	"fmt"
	"strings"
)

// Node is one record line and its nested children. Top-level records have
// level 0; an externally addressable record also carries a cross-reference
// id of the form "@token@".
type Node struct {
	Level    int
	XRef     string
	Tag      string
	Value    string
	Children []*Node
}

// NewNode creates a childless node.
func NewNode(level int, tag, value string) *Node {
	return &Node{Level: level, Tag: tag, Value: value}
}

// NewLocationRecord creates an empty top-level location record addressable
// by the given business id.
func NewLocationRecord(id string) *Node {
	return &Node{
		Level: 0,
		Tag:   TagLocation,
		XRef:  fmt.Sprintf("@%s@", id),
	}
}

// NewTrailer creates the sentinel record that terminates a registry file.
func NewTrailer() *Node {
	return &Node{Level: 0, Tag: TagTrailer}
}

// AddChild appends a child node and returns it for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// ID returns the business identifier: the cross-reference id stripped of its
// "@" delimiters. Empty for records without one.
func (n *Node) ID() string {
	return strings.Trim(n.XRef, "@")
}

// FirstChild returns the first direct child carrying the given tag, or nil.
func (n *Node) FirstChild(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// ChildrenByTag returns all direct children carrying the given tag, in order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var matched []*Node
	for _, child := range n.Children {
		if child.Tag == tag {
			matched = append(matched, child)
		}
	}
	return matched
}
