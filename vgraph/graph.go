package vgraph

import "sort"

// Graph is the concrete, in-memory input/output variation graph. It
// implements the capability set the merge core requires: iterate nodes,
// iterate edges, iterate paths, get node length. K-mer enumeration lives in
// kmer_enum.go.
type Graph struct {
	Nodes map[int64]Node
	Edges []Edge
	Paths []Path

	edgeSeen map[edgeEnds]bool
}

// New returns an empty graph ready for population.
func New() *Graph {
	return &Graph{Nodes: make(map[int64]Node)}
}

// edgeEnds is an edge's two (node, is-high-end) sides in a canonical,
// direction-independent order, used to recognize an edge reached from
// either side as the same edge.
type edgeEnds struct {
	id1   int64
	high1 bool
	id2   int64
	high2 bool
}

func canonicalEdgeEnds(e Edge) edgeEnds {
	id1, high1 := e.From, !e.FromStart
	id2, high2 := e.To, e.ToEnd
	if id1 > id2 || (id1 == id2 && !high1 && high2) {
		id1, high1, id2, high2 = id2, high2, id1, high1
	}
	return edgeEnds{id1, high1, id2, high2}
}

// NodeLength returns the length of node id's sequence and whether it
// exists.
func (g *Graph) NodeLength(id int64) (int, bool) {
	n, ok := g.Nodes[id]
	if !ok {
		return 0, false
	}
	return len(n.Sequence), true
}

// AddNode inserts or overwrites a node.
func (g *Graph) AddNode(n Node) {
	if g.Nodes == nil {
		g.Nodes = make(map[int64]Node)
	}
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge, unless an edge between the same two node-ends
// (reached from either side) has already been added.
func (g *Graph) AddEdge(e Edge) {
	key := canonicalEdgeEnds(e)
	if g.edgeSeen == nil {
		g.edgeSeen = make(map[edgeEnds]bool)
	}
	if g.edgeSeen[key] {
		return
	}
	g.edgeSeen[key] = true
	g.Edges = append(g.Edges, e)
}

// AddPath appends a path.
func (g *Graph) AddPath(p Path) {
	g.Paths = append(g.Paths, p)
}

// ForEachNode visits every node in ascending id order, for deterministic
// output.
func (g *Graph) ForEachNode(visit func(Node)) {
	ids := make([]int64, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		visit(g.Nodes[id])
	}
}

// ForEachEdge visits every edge in insertion order.
func (g *Graph) ForEachEdge(visit func(Edge)) {
	for _, e := range g.Edges {
		visit(e)
	}
}

// ForEachPath visits every named path in insertion order.
func (g *Graph) ForEachPath(visit func(Path)) {
	for _, p := range g.Paths {
		visit(p)
	}
}

// PathsByName returns a name -> Path lookup, built fresh each call. Callers
// that need to intersect two graphs' path name sets use this.
func (g *Graph) PathsByName() map[string]Path {
	out := make(map[string]Path, len(g.Paths))
	for _, p := range g.Paths {
		out[p.Name] = p
	}
	return out
}

// IsCoveredByPaths reports whether every node in the graph is touched by
// at least one mapping of at least one named path.
func (g *Graph) IsCoveredByPaths() bool {
	touched := make(map[int64]bool, len(g.Nodes))
	for _, p := range g.Paths {
		for _, m := range p.Mappings {
			touched[m.Position.NodeID] = true
		}
	}
	for id := range g.Nodes {
		if !touched[id] {
			return false
		}
	}
	return true
}
