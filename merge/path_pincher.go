package merge

import (
	"sort"

	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
)

// lengthOfNode resolves a node id's length, matching the signature
// vgraph.Path.Length already expects (vgraph.ReverseMapping instead takes
// the length itself).
type lengthOfNode func(id int64) (int, bool)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// totalPathLength sums path's mapping effective from-lengths, failing with
// NonPerfectMapping if any mapping is not a perfect match.
func totalPathLength(path vgraph.Path, lenOf lengthOfNode) (int, error) {
	total := 0
	for _, m := range path.Mappings {
		if !m.IsPerfectMatch() {
			return 0, newError(NonPerfectMapping, "mapping on node %d is not a perfect match", m.Position.NodeID)
		}
		l, ok := lenOf(m.Position.NodeID)
		if !ok {
			return 0, newError(MissingEmbedding, "unknown node %d", m.Position.NodeID)
		}
		total += m.EffectiveFromLength(l)
	}
	return total, nil
}

// pinchPath walks pathA and pathB in lock-step, issuing one pinch per
// overlapping mapping pair. It is factored out of
// PathPincher.PinchWith so KmerPincher can drive it on synthesized minimal
// paths that share no name.
func pinchPath(threads *pinch.ThreadSet, pathA vgraph.Path, lenA lengthOfNode, embedA Embedding, pathB vgraph.Path, lenB lengthOfNode, embedB Embedding) (int, error) {
	i, j := 0, 0
	posA, posB := 0, 0
	pinches := 0

	for i < len(pathA.Mappings) && j < len(pathB.Mappings) {
		mapA := pathA.Mappings[i]
		mapB := pathB.Mappings[j]
		if !mapA.IsPerfectMatch() || !mapB.IsPerfectMatch() {
			return pinches, newError(NonPerfectMapping, "mapping is not a perfect match")
		}

		lenNodeA, ok := lenA(mapA.Position.NodeID)
		if !ok {
			return pinches, newError(MissingEmbedding, "unknown node %d", mapA.Position.NodeID)
		}
		lenNodeB, ok := lenB(mapB.Position.NodeID)
		if !ok {
			return pinches, newError(MissingEmbedding, "unknown node %d", mapB.Position.NodeID)
		}
		mapLenA := mapA.EffectiveFromLength(lenNodeA)
		mapLenB := mapB.EffectiveFromLength(lenNodeB)

		startA, endA := posA, posA+mapLenA
		startB, endB := posB, posB+mapLenB
		overlapStart := maxInt(startA, startB)
		overlapEnd := minInt(endA, endB)

		if overlapEnd > overlapStart {
			overlapLength := overlapEnd - overlapStart

			entryA, err := embedA.Lookup(mapA.Position.NodeID)
			if err != nil {
				return pinches, err
			}
			entryB, err := embedB.Lookup(mapB.Position.NodeID)
			if err != nil {
				return pinches, err
			}

			offsetA := TransformPathPosition(entryA, mapA.Position.Offset, mapA.Position.IsReverse, overlapStart, startA, overlapLength)
			offsetB := TransformPathPosition(entryB, mapB.Position.Offset, mapB.Position.IsReverse, overlapStart, startB, overlapLength)
			relOrient := relativeOrientation(entryA.IsReverse, mapA.Position.IsReverse, entryB.IsReverse, mapB.Position.IsReverse)

			threads.Pinch(entryA.Thread, entryB.Thread, offsetA, offsetB, overlapLength, relOrient)
			pinches++
		}

		minEnd := minInt(endA, endB)
		if endA == minEnd {
			i++
			posA = endA
		}
		if endB == minEnd {
			j++
			posB = endB
		}
	}

	if i != len(pathA.Mappings) || j != len(pathB.Mappings) {
		return pinches, newError(PathMisalignment, "paths did not end at the same time")
	}
	return pinches, nil
}

// PathPincher walks shared named paths between two embedded graphs and
// pinches their overlapping mappings together.
type PathPincher struct {
	Threads *pinch.ThreadSet
	GraphA  *vgraph.Graph
	EmbedA  Embedding
	GraphB  *vgraph.Graph
	EmbedB  Embedding
}

// NewPathPincher returns a PathPincher over the two already-embedded
// graphs.
func NewPathPincher(threads *pinch.ThreadSet, graphA *vgraph.Graph, embedA Embedding, graphB *vgraph.Graph, embedB Embedding) *PathPincher {
	return &PathPincher{Threads: threads, GraphA: graphA, EmbedA: embedA, GraphB: graphB, EmbedB: embedB}
}

// PinchWith intersects the two graphs' path name sets and pinches every
// shared path's overlapping mappings, in ascending name order. It returns
// the number of shared names found and pinches issued.
func (p *PathPincher) PinchWith() (shared, pinches int, err error) {
	namesA := p.GraphA.PathsByName()
	namesB := p.GraphB.PathsByName()

	var names []string
	for name := range namesA {
		if _, ok := namesB[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		pathA := namesA[name]
		pathB := namesB[name]

		totalA, err := totalPathLength(pathA, p.GraphA.NodeLength)
		if err != nil {
			return shared, pinches, err
		}
		totalB, err := totalPathLength(pathB, p.GraphB.NodeLength)
		if err != nil {
			return shared, pinches, err
		}
		if totalA != totalB {
			return shared, pinches, newError(PathLengthMismatch, "path %q has length %d in the first graph and %d in the second", name, totalA, totalB)
		}

		n, err := pinchPath(p.Threads, pathA, p.GraphA.NodeLength, p.EmbedA, pathB, p.GraphB.NodeLength, p.EmbedB)
		if err != nil {
			return shared, pinches, err
		}
		pinches += n
		shared++
	}
	return shared, pinches, nil
}
