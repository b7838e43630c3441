package merge

import (
	"github.com/grailbio/base/log"

	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
)

// ThreadSequences is the side table from thread name to DNA string,
// populated only for node-threads and consulted at readout.
type ThreadSequences map[int64]string

// IDAllocator yields fresh thread names. A single allocator is shared by
// every Embedder writing into one pinch.ThreadSet so that node-threads and
// staple threads never collide across the two input graphs.
type IDAllocator struct {
	next int64
}

// Next returns a thread name never returned before by this allocator.
func (a *IDAllocator) Next() int64 {
	a.next++
	return a.next
}

// Embedding is the total map from one input graph's node ids to their
// embedding triples.
type Embedding map[int64]EmbeddingEntry

// Lookup returns the embedding entry for id, wrapped in a MissingEmbedding
// error if absent.
func (e Embedding) Lookup(id int64) (EmbeddingEntry, error) {
	entry, ok := e[id]
	if !ok {
		return EmbeddingEntry{}, newError(MissingEmbedding, "no embedding entry for node %d", id)
	}
	return entry, nil
}

// Embedder builds the per-node and per-edge threads for one input graph
// against a pinch.ThreadSet shared with its merge peer.
type Embedder struct {
	Graph     *vgraph.Graph
	Threads   *pinch.ThreadSet
	Sequences ThreadSequences
	IDs       *IDAllocator
	Name      string
	// Verbose reproduces the original tool's unconditional per-node
	// progress print, gated behind an opt-in flag so normal runs stay
	// quiet on real-sized graphs.
	Verbose bool

	Embedding Embedding
}

// NewEmbedder returns an Embedder ready to embed g. name is used only in
// diagnostics.
func NewEmbedder(g *vgraph.Graph, threads *pinch.ThreadSet, seqs ThreadSequences, ids *IDAllocator, name string) *Embedder {
	return &Embedder{
		Graph:     g,
		Threads:   threads,
		Sequences: seqs,
		IDs:       ids,
		Name:      name,
		Embedding: make(Embedding, len(g.Nodes)),
	}
}

// Embed allocates one thread per node and one staple thread per edge. It
// returns the number of nodes and edges embedded and staples created, for
// Stats.
func (e *Embedder) Embed() (nodes, edges, staples int, err error) {
	e.Graph.ForEachNode(func(n vgraph.Node) {
		if e.Verbose {
			log.Printf("Node (%s): %d: %s", e.Name, n.ID, n.Sequence)
		}
		thread := e.IDs.Next()
		e.Threads.AddThread(thread, len(n.Sequence), false)
		e.Sequences[thread] = n.Sequence
		e.Embedding[n.ID] = EmbeddingEntry{Thread: thread, Offset: 0, IsReverse: false}
		nodes++
	})

	var edgeErr error
	e.Graph.ForEachEdge(func(edge vgraph.Edge) {
		if edgeErr != nil {
			return
		}
		if stapleErr := e.embedEdge(edge); stapleErr != nil {
			edgeErr = stapleErr
			return
		}
		edges++
		staples++
	})
	if edgeErr != nil {
		return nodes, edges, staples, edgeErr
	}
	return nodes, edges, staples, nil
}

// embedEdge allocates a 2-base staple thread for edge and welds it to the
// two outward-facing node-ends.
func (e *Embedder) embedEdge(edge vgraph.Edge) error {
	fromEntry, err := e.Embedding.Lookup(edge.From)
	if err != nil {
		return err
	}
	toEntry, err := e.Embedding.Lookup(edge.To)
	if err != nil {
		return err
	}
	fromLen, ok := e.Graph.NodeLength(edge.From)
	if !ok {
		return newError(MissingEmbedding, "edge references unknown node %d", edge.From)
	}
	toLen, ok := e.Graph.NodeLength(edge.To)
	if !ok {
		return newError(MissingEmbedding, "edge references unknown node %d", edge.To)
	}

	isEndFrom, isEndTo := EdgeEndFlags(edge.FromStart, edge.ToEnd)
	fromOffset := NodeSide(fromEntry, fromLen, isEndFrom)
	toOffset := NodeSide(toEntry, toLen, isEndTo)

	staple := e.IDs.Next()
	e.Threads.AddThread(staple, 2, true)

	// The asymmetry here is deliberate: staple position 0 faces outward
	// toward the from-node's isEndFrom side, position 1 faces outward
	// toward the to-node's opposite (!isEndTo) side.
	e.Threads.Pinch(staple, fromEntry.Thread, 0, fromOffset, 1, isEndFrom)
	e.Threads.Pinch(staple, toEntry.Thread, 1, toOffset, 1, !isEndTo)
	return nil
}

// IsCoveredByPaths reports whether every node in e's graph is touched by
// at least one mapping of at least one named path.
func (e *Embedder) IsCoveredByPaths() bool {
	return e.Graph.IsCoveredByPaths()
}
