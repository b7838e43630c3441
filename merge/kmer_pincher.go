package merge

import (
	"sort"
	"sync"

	"github.com/adamnovak/corg/kmerindex"
	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
)

// MaxUniqueKmerBytes bounds how many bytes a kmer's occurrence set is
// allowed to approximately occupy before it is discarded as too expensive
// to check for uniqueness.
const MaxUniqueKmerBytes = 1 << 20

// kmerPaths is one graph's dedup map from kmer string to its synthesized
// minimal mapping path, or an empty Path sentinel once a kmer has been
// observed with two conflicting paths. All access goes through mu.
type kmerPaths struct {
	mu    sync.Mutex
	paths map[string]vgraph.Path
}

func newKmerPaths() *kmerPaths {
	return &kmerPaths{paths: make(map[string]vgraph.Path)}
}

// observe records the first sighting of a kmer's path; an identical
// resighting is a no-op, and a conflicting resighting clears the entry (and
// the reverse-complement entry, if one exists) to the ambiguous-empty-path
// sentinel.
func (k *kmerPaths) observe(kmer, revComp string, path vgraph.Path) {
	k.mu.Lock()
	defer k.mu.Unlock()
	existing, seen := k.paths[kmer]
	if !seen {
		k.paths[kmer] = path
		return
	}
	if pathsEqual(existing, path) {
		return
	}
	k.paths[kmer] = vgraph.Path{}
	if _, ok := k.paths[revComp]; ok {
		k.paths[revComp] = vgraph.Path{}
	}
}

// lookup returns the kmer's path and true only if it was recorded and not
// since cleared as ambiguous (identical resightings keep it).
func (k *kmerPaths) lookup(kmer string) (vgraph.Path, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	p, ok := k.paths[kmer]
	if !ok || len(p.Mappings) == 0 {
		return vgraph.Path{}, false
	}
	return p, true
}

// countUnambiguous returns the number of kmers recorded with a non-empty
// path, for Stats.
func (k *kmerPaths) countUnambiguous() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for _, p := range k.paths {
		if len(p.Mappings) > 0 {
			n++
		}
	}
	return n
}

// pathsEqual compares two paths position by position: node id, offset,
// is-reverse, edit count, and per-edit from/to length. It is reflexive and
// symmetric by construction.
func pathsEqual(a, b vgraph.Path) bool {
	if len(a.Mappings) != len(b.Mappings) {
		return false
	}
	for i := range a.Mappings {
		ma, mb := a.Mappings[i], b.Mappings[i]
		if ma.Position.NodeID != mb.Position.NodeID ||
			ma.Position.Offset != mb.Position.Offset ||
			ma.Position.IsReverse != mb.Position.IsReverse ||
			len(ma.Edits) != len(mb.Edits) {
			return false
		}
		for j := range ma.Edits {
			if ma.Edits[j].FromLength != mb.Edits[j].FromLength || ma.Edits[j].ToLength != mb.Edits[j].ToLength {
				return false
			}
		}
	}
	return true
}

// reverseWholePath reverses both the order of p's mappings and each
// mapping individually, using lenOf to resolve node lengths. Applying it
// twice returns a path equal to the original (the minimal-path round-trip
// property).
func reverseWholePath(p vgraph.Path, lenOf lengthOfNode) vgraph.Path {
	n := len(p.Mappings)
	out := vgraph.Path{Name: p.Name, Mappings: make([]vgraph.Mapping, n)}
	for i, m := range p.Mappings {
		l, _ := lenOf(m.Position.NodeID)
		out.Mappings[n-1-i] = vgraph.ReverseMapping(m, l)
	}
	return out
}

// KmerPincher finds k-mers that occur exactly once (counting reverse
// complements) in each of two embedded graphs and pinches the implied
// alignments together.
type KmerPincher struct {
	Threads *pinch.ThreadSet

	GraphA *vgraph.Graph
	EmbedA Embedding
	IndexA *kmerindex.Index

	GraphB *vgraph.Graph
	EmbedB Embedding
	IndexB *kmerindex.Index

	KmerSize    int
	EdgeMax     int
	Parallelism int

	kmersA *kmerPaths
	kmersB *kmerPaths
}

// NewKmerPincher returns a KmerPincher ready to observe and merge k-mers
// between the two already-embedded, already-indexed graphs.
func NewKmerPincher(threads *pinch.ThreadSet, graphA *vgraph.Graph, embedA Embedding, indexA *kmerindex.Index, graphB *vgraph.Graph, embedB Embedding, indexB *kmerindex.Index, kmerSize, edgeMax, parallelism int) *KmerPincher {
	return &KmerPincher{
		Threads:     threads,
		GraphA:      graphA,
		EmbedA:      embedA,
		IndexA:      indexA,
		GraphB:      graphB,
		EmbedB:      embedB,
		IndexB:      indexB,
		KmerSize:    kmerSize,
		EdgeMax:     edgeMax,
		Parallelism: parallelism,
		kmersA:      newKmerPaths(),
		kmersB:      newKmerPaths(),
	}
}

// observeOccurrence runs the byte-budget and uniqueness checks and, if occ
// survives both, records it in dedup. Building the minimal mapping path is
// already done by the upstream enumerator that produced occ.
func (k *KmerPincher) observeOccurrence(idx *kmerindex.Index, dedup *kmerPaths, occ vgraph.Occurrence) {
	if idx.ApproxSize(occ.Kmer) > MaxUniqueKmerBytes {
		return
	}
	revComp := vgraph.ReverseComplement(occ.Kmer)
	if idx.Count(occ.Kmer)+idx.Count(revComp) > 1 {
		return
	}
	dedup.observe(occ.Kmer, revComp, occ.Path)
}

// Observe enumerates k-mers in both graphs (in parallel, per graph) and
// feeds every occurrence through observeOccurrence. It is a no-op if
// KmerSize is zero.
func (k *KmerPincher) Observe() (uniqueA, uniqueB int, err error) {
	if k.KmerSize <= 0 {
		return 0, 0, nil
	}
	if errA := vgraph.EnumerateKmers(k.GraphA, k.KmerSize, k.EdgeMax, k.Parallelism, func(occ vgraph.Occurrence) {
		k.observeOccurrence(k.IndexA, k.kmersA, occ)
	}); errA != nil {
		return 0, 0, wrapError(InputReadError, errA, "enumerating kmers in the first graph")
	}
	if errB := vgraph.EnumerateKmers(k.GraphB, k.KmerSize, k.EdgeMax, k.Parallelism, func(occ vgraph.Occurrence) {
		k.observeOccurrence(k.IndexB, k.kmersB, occ)
	}); errB != nil {
		return 0, 0, wrapError(InputReadError, errB, "enumerating kmers in the second graph")
	}
	return k.kmersA.countUnambiguous(), k.kmersB.countUnambiguous(), nil
}

// lookupPeer finds graph B's path for kmer, trying kmer itself and then
// its reverse complement. reversed reports which one matched.
func (k *KmerPincher) lookupPeer(kmer string) (path vgraph.Path, reversed, ok bool) {
	if p, found := k.kmersB.lookup(kmer); found {
		return p, false, true
	}
	if p, found := k.kmersB.lookup(vgraph.ReverseComplement(kmer)); found {
		return p, true, true
	}
	return vgraph.Path{}, false, false
}

// Merge runs the sequential merge step: every unambiguous kmer seen in
// graph A that also has an unambiguous peer in graph B (directly or via
// reverse complement) is fed, as a pair of synthesized paths, to
// PathPincher's shared per-path routine.
func (k *KmerPincher) Merge() (pinches int, err error) {
	k.kmersA.mu.Lock()
	snapshot := make(map[string]vgraph.Path, len(k.kmersA.paths))
	for kmer, p := range k.kmersA.paths {
		if len(p.Mappings) > 0 {
			snapshot[kmer] = p
		}
	}
	k.kmersA.mu.Unlock()

	kmers := make([]string, 0, len(snapshot))
	for kmer := range snapshot {
		kmers = append(kmers, kmer)
	}
	sort.Strings(kmers)

	for _, kmer := range kmers {
		pathA := snapshot[kmer]
		pathB, reversed, ok := k.lookupPeer(kmer)
		if !ok {
			continue
		}
		if reversed {
			pathB = reverseWholePath(pathB, k.GraphB.NodeLength)
		}
		n, err := pinchPath(k.Threads, pathA, k.GraphA.NodeLength, k.EmbedA, pathB, k.GraphB.NodeLength, k.EmbedB)
		if err != nil {
			return pinches, err
		}
		pinches += n
	}
	return pinches, nil
}

// PinchWith runs Observe followed by Merge.
func (k *KmerPincher) PinchWith() (uniqueA, uniqueB, pinches int, err error) {
	uniqueA, uniqueB, err = k.Observe()
	if err != nil {
		return 0, 0, 0, err
	}
	pinches, err = k.Merge()
	return uniqueA, uniqueB, pinches, err
}
