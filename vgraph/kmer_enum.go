package vgraph

import (
	"github.com/grailbio/base/traverse"
)

// Occurrence is one place a k-mer spells out correctly in a graph: the
// k-mer itself and the already-materialized minimal mapping path that
// spans it, node by node. Building this path is the enumerator's job; the
// core (merge.KmerPincher) only validates and deduplicates it.
type Occurrence struct {
	Kmer string
	Path Path
}

type graphEnd struct {
	node int64
	high bool
}

func buildAdjacency(g *Graph) map[graphEnd][]graphEnd {
	adj := make(map[graphEnd][]graphEnd, len(g.Edges)*2)
	for _, e := range g.Edges {
		from := graphEnd{node: e.From, high: !e.FromStart}
		to := graphEnd{node: e.To, high: e.ToEnd}
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}
	return adj
}

// cursor tracks where the next unconsumed base of the k-mer lives.
type cursor struct {
	node      int64
	pos       int
	isReverse bool
}

// EnumerateKmers calls visit once for every walk of exactly k bases that
// starts, reading forward, at some base of g. Leaving a node end with a
// single neighbor is free; leaving one with several neighbors spends one
// unit of edgeMax, and walks that would need more than edgeMax such
// choice points are dropped entirely, not truncated. A start from which
// several walks branch yields one Occurrence per walk. Work is fanned out
// across parallelism workers, each taking every parallelism-th node as a
// starting node.
func EnumerateKmers(g *Graph, k, edgeMax, parallelism int, visit func(Occurrence)) error {
	if parallelism < 1 {
		parallelism = 1
	}
	adj := buildAdjacency(g)
	ids := make([]int64, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}

	return traverse.Each(parallelism, func(workerIdx int) error {
		for i := workerIdx; i < len(ids); i += parallelism {
			nodeID := ids[i]
			seq := g.Nodes[nodeID].Sequence
			for offset := 0; offset < len(seq); offset++ {
				walkFrom(g, adj, cursor{node: nodeID, pos: offset, isReverse: false}, k, edgeMax, nil, "", visit)
			}
		}
		return nil
	})
}

func walkFrom(g *Graph, adj map[graphEnd][]graphEnd, start cursor, k, edgeMax int, mappings []Mapping, spelled string, visit func(Occurrence)) {
	c := start
	nodeLen := len(g.Nodes[c.node].Sequence)
	remaining := k - len(spelled)

	var avail int
	if c.isReverse {
		avail = c.pos + 1
	} else {
		avail = nodeLen - c.pos
	}
	take := remaining
	if avail < take {
		take = avail
	}
	if take <= 0 {
		return
	}

	var stepStr string
	if c.isReverse {
		raw := g.Nodes[c.node].Sequence[c.pos-take+1 : c.pos+1]
		stepStr = ReverseComplement(raw)
	} else {
		stepStr = g.Nodes[c.node].Sequence[c.pos : c.pos+take]
	}

	step := Mapping{
		Position: Position{NodeID: c.node, Offset: c.pos, IsReverse: c.isReverse},
		Edits:    []Edit{{FromLength: take, ToLength: take}},
	}
	newMappings := append(append([]Mapping{}, mappings...), step)
	newSpelled := spelled + stepStr

	if len(newSpelled) == k {
		visit(Occurrence{Kmer: newSpelled, Path: Path{Mappings: newMappings}})
		return
	}

	var exitEnd graphEnd
	if c.isReverse {
		exitEnd = graphEnd{node: c.node, high: false}
	} else {
		exitEnd = graphEnd{node: c.node, high: true}
	}
	candidates := adj[exitEnd]

	// A single successor is not a choice point: it costs nothing to cross.
	// Only crossings that actually fork the walk spend budget, so edgeMax=0
	// still permits any unbranched chain of nodes.
	nextEdgeMax := edgeMax
	if len(candidates) > 1 {
		if edgeMax <= 0 {
			return
		}
		nextEdgeMax = edgeMax - 1
	}

	for _, next := range candidates {
		nextLen := len(g.Nodes[next.node].Sequence)
		if nextLen == 0 {
			continue
		}
		var nc cursor
		if next.high {
			nc = cursor{node: next.node, pos: nextLen - 1, isReverse: true}
		} else {
			nc = cursor{node: next.node, pos: 0, isReverse: false}
		}
		walkFrom(g, adj, nc, k, nextEdgeMax, newMappings, newSpelled, visit)
	}
}
