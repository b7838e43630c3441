// Package vgraph provides a concrete, in-memory variation-graph
// representation: nodes, edges, and named paths across them, plus the
// iteration, k-mer enumeration, and reverse-complement operations the merge
// core needs to treat a graph as an interface rather than a concrete format.
package vgraph

import "github.com/adamnovak/corg/dna"

// Node is a single sequence-bearing vertex of a variation graph.
type Node struct {
	ID       int64
	Sequence string
}

// Edge attaches one end of a node to one end of another. FromStart and
// ToEnd record which end of each node participates, matching the
// from_start/to_end convention of the variation-graph wire format this
// core was built against.
type Edge struct {
	From, To         int64
	FromStart, ToEnd bool
}

// Edit is one unit of a mapping's edit list. A perfect-match edit has
// FromLength == ToLength and an empty Sequence.
type Edit struct {
	FromLength, ToLength int
	Sequence             string
}

// IsPerfectMatch reports whether e represents an unedited copy.
func (e Edit) IsPerfectMatch() bool {
	return e.FromLength == e.ToLength && e.Sequence == ""
}

// Position locates a single base (or the start of a mapping) on a node.
type Position struct {
	NodeID    int64
	Offset    int
	IsReverse bool
}

// Mapping is a path's visit to one node.
type Mapping struct {
	Position Position
	Edits    []Edit
}

// IsPerfectMatch reports whether every edit in m is a perfect match. A
// mapping with no edits is, by definition, also a perfect match: it covers
// the remainder of the node from its offset.
func (m Mapping) IsPerfectMatch() bool {
	for _, e := range m.Edits {
		if !e.IsPerfectMatch() {
			return false
		}
	}
	return true
}

// EffectiveFromLength returns the sum of the mapping's edits' from-lengths,
// or, if it has no edits, the length of the node's remainder starting at
// the mapping's offset in the mapping's direction: (nodeLength - offset)
// forward, or (offset + 1) reverse.
func (m Mapping) EffectiveFromLength(nodeLength int) int {
	if len(m.Edits) == 0 {
		if m.Position.IsReverse {
			return m.Position.Offset + 1
		}
		return nodeLength - m.Position.Offset
	}
	total := 0
	for _, e := range m.Edits {
		total += e.FromLength
	}
	return total
}

// Path is a named, ordered sequence of mappings.
type Path struct {
	Name     string
	Mappings []Mapping
}

// Length returns the path's total effective from-length, using lengthOf to
// resolve each mapping's node length.
func (p Path) Length(lengthOf func(nodeID int64) (int, bool)) (int, bool) {
	total := 0
	for _, m := range p.Mappings {
		l, ok := lengthOf(m.Position.NodeID)
		if !ok {
			return 0, false
		}
		total += m.EffectiveFromLength(l)
	}
	return total, true
}

// ReverseMapping returns m reversed in place along its node, given the
// node's length. It flips IsReverse and recomputes Offset so that a
// second application of ReverseMapping (with the same node length) returns
// the original mapping, satisfying the minimal-path round-trip property.
func ReverseMapping(m Mapping, nodeLength int) Mapping {
	from := m.EffectiveFromLength(nodeLength)
	var newOffset int
	if m.Position.IsReverse {
		newOffset = m.Position.Offset - from + 1
	} else {
		newOffset = m.Position.Offset + from - 1
	}
	out := Mapping{
		Position: Position{
			NodeID:    m.Position.NodeID,
			Offset:    newOffset,
			IsReverse: !m.Position.IsReverse,
		},
	}
	if len(m.Edits) > 0 {
		out.Edits = make([]Edit, len(m.Edits))
		for i, e := range m.Edits {
			out.Edits[len(m.Edits)-1-i] = e
		}
	}
	return out
}

// ReverseComplement delegates to dna.ReverseComplement; the core treats
// this as an external, non-domain-specific primitive.
func ReverseComplement(s string) string {
	return dna.ReverseComplement(s)
}
