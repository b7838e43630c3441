package kmerindex

import (
	"sync"

	"github.com/biogo/store/llrb"
	farm "github.com/dgryski/go-farm"

	"github.com/adamnovak/corg/vgraph"
)

// nShard is the number of independently-locked shards the index is split
// across, following the sharding factor of the kmer -> genelist map this
// package's sharding is grounded on.
const nShard = 256

// Occurrence is one place a k-mer occurs in a graph: the node it starts on,
// the offset within that node, and whether the graph was walked in reverse
// to spell it there.
type Occurrence struct {
	NodeID    int64
	Offset    int
	IsReverse bool
}

// occKey adapts Occurrence to llrb.Comparable so that occurrences of a
// single kmer can be kept in a deterministically ordered set.
type occKey Occurrence

func (k occKey) Compare(c llrb.Comparable) int {
	o := c.(occKey)
	if k.NodeID != o.NodeID {
		if k.NodeID < o.NodeID {
			return -1
		}
		return 1
	}
	if k.Offset != o.Offset {
		return k.Offset - o.Offset
	}
	if k.IsReverse == o.IsReverse {
		return 0
	}
	if !k.IsReverse {
		return -1
	}
	return 1
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*llrb.Tree
}

// Index is a concrete kmer-string -> occurrence-set map for one graph. It
// provides the ApproxSize/Count pair merge.KmerPincher consults, plus
// bounded iteration over occurrences via Occurrences.
type Index struct {
	shards [nShard]shard
}

func shardFor(s string) int {
	return int(farm.Hash64WithSeed(nil, encodeForHash(s)) % nShard)
}

// encodeForHash produces a shard-selection key. Kmers with non-ACGT bases
// (which never occur in practice, since minimal paths only ever spell out
// literal bases) fall back to a length-independent hash over the bytes.
func encodeForHash(s string) uint64 {
	if k := encode(s); k != invalidKmer {
		return uint64(k)
	}
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func (idx *Index) shardFor(kmer string) *shard {
	return &idx.shards[shardFor(kmer)]
}

// Add records that kmer occurs at occ. Safe for concurrent use across
// distinct or identical kmers.
func (idx *Index) Add(kmer string, occ Occurrence) {
	s := idx.shardFor(kmer)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]*llrb.Tree)
	}
	t, ok := s.entries[kmer]
	if !ok {
		t = &llrb.Tree{}
		s.entries[kmer] = t
	}
	t.Insert(occKey(occ))
}

// ApproxSize returns the number of bytes the occurrences of kmer would
// occupy if materialized, used by merge.KmerPincher to enforce
// MAX_UNIQUE_KMER_BYTES without walking the full occurrence set.
func (idx *Index) ApproxSize(kmer string) int {
	s := idx.shardFor(kmer)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.entries[kmer]
	if !ok {
		return 0
	}
	return t.Len() * len(kmer)
}

// Occurrences calls visit for every recorded occurrence of kmer, in
// ascending (NodeID, Offset, IsReverse) order, stopping early if visit
// returns false.
func (idx *Index) Occurrences(kmer string, visit func(Occurrence) bool) {
	s := idx.shardFor(kmer)
	s.mu.Lock()
	t, ok := s.entries[kmer]
	s.mu.Unlock()
	if !ok {
		return
	}
	t.Do(func(c llrb.Comparable) bool {
		return !visit(Occurrence(c.(occKey)))
	})
}

// Count returns the total number of recorded occurrences of kmer.
func (idx *Index) Count(kmer string) int {
	s := idx.shardFor(kmer)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.entries[kmer]
	if !ok {
		return 0
	}
	return t.Len()
}

// Build populates an Index with every k-mer occurrence in g, fanning the
// enumeration out across parallelism workers. This mirrors the
// producer/sharded-map population strategy used to build a whole-graph
// index in one pass.
func Build(g *vgraph.Graph, k, edgeMax, parallelism int) (*Index, error) {
	idx := &Index{}
	err := vgraph.EnumerateKmers(g, k, edgeMax, parallelism, func(occ vgraph.Occurrence) {
		if len(occ.Path.Mappings) == 0 {
			return
		}
		first := occ.Path.Mappings[0]
		idx.Add(occ.Kmer, Occurrence{
			NodeID:    first.Position.NodeID,
			Offset:    first.Position.Offset,
			IsReverse: first.Position.IsReverse,
		})
	})
	return idx, err
}
