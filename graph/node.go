// Package graph implements the ObjectGraphBuilder of spec.md §4.7: it maps
// each record to a node in a graph rooted at a synthetic ROOT node,
// resolves id references, and tracks libraries and their owned classes.
package graph

import (
	"github.com/zeroed-tech/viewstate-decoder/value"
)

// UnresolvedId is the default Id of a node that has not yet been assigned
// an object id (e.g. the synthetic ROOT).
const UnresolvedId int32 = -1

// Node is the ObjectNode of spec.md §3: a graph vertex keyed by id with a
// type, optional name, optional value, and ordered member children. A node
// is unresolved when first created as a placeholder by NodeFor, and
// becomes resolved when the record with a matching id sets its fields.
type Node struct {
	Id      int32
	Type    string
	Name    string
	Value   *value.Value
	Members []*Node

	resolved bool
}

// Resolved reports whether a record has already populated this node's
// fields, as opposed to it still being a bare NodeFor placeholder.
func (n *Node) Resolved() bool {
	return n.resolved
}

func (n *Node) markResolved() {
	n.resolved = true
}

// AddMember appends a child node, preserving parse order.
func (n *Node) AddMember(child *Node) {
	n.Members = append(n.Members, child)
}
