package merge

import (
	"github.com/grailbio/base/log"

	"github.com/adamnovak/corg/kmerindex"
	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
)

// Merge runs the full pipeline against two input graphs: embed both, pinch
// their shared named paths, pinch their mutually unique kmers when
// opts.KmerSize is set, and read the welded thread set back out into a
// merged graph. Each stage's counts are folded into the returned Stats. The
// path, kmer and readout stages log theirs as they complete; the embedding
// counts are logged only when opts.Verbose is set.
func Merge(graphA, graphB *vgraph.Graph, opts Opts) (*vgraph.Graph, Stats, error) {
	if opts.KmersOnly && opts.KmerSize <= 0 {
		return nil, Stats{}, newError(UsageError, "kmers-only requires a kmer size greater than zero")
	}

	threads := pinch.NewThreadSet()
	defer threads.Destroy()
	seqs := make(ThreadSequences)
	ids := &IDAllocator{}

	embedA := NewEmbedder(graphA, threads, seqs, ids, "first graph")
	embedA.Verbose = opts.Verbose
	nodesA, edgesA, staplesA, err := embedA.Embed()
	if err != nil {
		return nil, Stats{}, err
	}
	embedB := NewEmbedder(graphB, threads, seqs, ids, "second graph")
	embedB.Verbose = opts.Verbose
	nodesB, edgesB, staplesB, err := embedB.Embed()
	if err != nil {
		return nil, Stats{}, err
	}
	stats := Stats{
		InputNodes: nodesA + nodesB,
		InputEdges: edgesA + edgesB,
		Staples:    staplesA + staplesB,
	}
	if opts.Verbose {
		log.Printf("Stats: embedded %d nodes, %d edges, %d staples", stats.InputNodes, stats.InputEdges, stats.Staples)
	}
	if !embedA.IsCoveredByPaths() {
		log.Printf("warning: first graph has nodes not touched by any path")
	}
	if !embedB.IsCoveredByPaths() {
		log.Printf("warning: second graph has nodes not touched by any path")
	}

	if !opts.KmersOnly {
		pincher := NewPathPincher(threads, graphA, embedA.Embedding, graphB, embedB.Embedding)
		shared, pinches, err := pincher.PinchWith()
		if err != nil {
			return nil, Stats{}, err
		}
		stats.SharedPathNames = shared
		stats.PathPinches = pinches
		log.Printf("Stats: pinched %d shared path names, %d path pinches", shared, pinches)
	}

	ranKmers := opts.KmerSize > 0
	if ranKmers {
		indexA, err := kmerindex.Build(graphA, opts.KmerSize, opts.EdgeMax, opts.Threads)
		if err != nil {
			return nil, Stats{}, wrapError(InputReadError, err, "indexing kmers in the first graph")
		}
		indexB, err := kmerindex.Build(graphB, opts.KmerSize, opts.EdgeMax, opts.Threads)
		if err != nil {
			return nil, Stats{}, wrapError(InputReadError, err, "indexing kmers in the second graph")
		}
		kmerPincher := NewKmerPincher(threads, graphA, embedA.Embedding, indexA, graphB, embedB.Embedding, indexB, opts.KmerSize, opts.EdgeMax, opts.Threads)
		uniqueA, uniqueB, pinches, err := kmerPincher.PinchWith()
		if err != nil {
			return nil, Stats{}, err
		}
		stats.UniqueKmersA = uniqueA
		stats.UniqueKmersB = uniqueB
		stats.KmerPinches = pinches
		log.Printf("Stats: %d unique kmers in the first graph, %d in the second, %d kmer pinches", uniqueA, uniqueB, pinches)
	}

	if stats.SharedPathNames == 0 && (!ranKmers || (stats.UniqueKmersA == 0 && stats.UniqueKmersB == 0)) {
		log.Printf("warning: the two graphs share no path names and no unique kmers; nothing will be merged")
	}

	out := NewReader(threads, seqs).Readout()
	stats.OutputNodes = len(out.Nodes)
	stats.OutputEdges = len(out.Edges)
	log.Printf("Stats: readout produced %d nodes, %d edges", stats.OutputNodes, stats.OutputEdges)

	return out, stats, nil
}
