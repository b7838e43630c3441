package merge

import (
	"github.com/adamnovak/corg/dna"
	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
)

// firstNodeSegment returns the first non-staple member of block, or nil if
// it has none (which should not happen for any block a real node or
// staple pinch produced).
func firstNodeSegment(block *pinch.Block) *pinch.Segment {
	if block == nil {
		return nil
	}
	for _, m := range block.Members {
		if !m.Thread.IsStaple {
			return m
		}
	}
	return nil
}

// leaderOfSegment returns the segment that stands for s's output node: the
// first non-staple member of s's block, or s itself if s is unblocked.
// Staple-only segments are never themselves leaders.
func leaderOfSegment(s *pinch.Segment) *pinch.Segment {
	if s.Block == nil {
		return s
	}
	if l := firstNodeSegment(s.Block); l != nil {
		return l
	}
	return s
}

// Reader converts a fully pinched, join-normalized thread set back into a
// variation graph.
type Reader struct {
	Threads   *pinch.ThreadSet
	Sequences ThreadSequences
}

// NewReader returns a Reader over threads and the sequences recorded for
// its node-threads during embedding.
func NewReader(threads *pinch.ThreadSet, seqs ThreadSequences) *Reader {
	return &Reader{Threads: threads, Sequences: seqs}
}

// clippedSequence returns c's bases, clipped to its own thread range and
// reverse-complemented if c's orientation disagrees with leader's, so the
// result reads in leader's own frame.
func (r *Reader) clippedSequence(c, leader *pinch.Segment) string {
	full := r.Sequences[c.Thread.Name]
	seq := full[c.Start:c.End()]
	if c.Reversed != leader.Reversed {
		seq = vgraph.ReverseComplement(seq)
	}
	return seq
}

// sequenceForLeader picks leader's output sequence: leader's own clip,
// unless it is all N's and some other non-staple block member's clip (in
// leader's frame) is not.
func (r *Reader) sequenceForLeader(leader *pinch.Segment) string {
	best := r.clippedSequence(leader, leader)
	if !dna.IsAllN(best) || leader.Block == nil {
		return best
	}
	for _, m := range leader.Block.Members {
		if m.Thread.IsStaple || m == leader {
			continue
		}
		seq := r.clippedSequence(m, leader)
		if !dna.IsAllN(seq) {
			return seq
		}
	}
	return best
}

// staplePeer returns the segment at m's staple thread's other base.
func (r *Reader) staplePeer(m *pinch.Segment) *pinch.Segment {
	if other := r.Threads.RawNeighbor(m, true); other != nil {
		return other
	}
	return r.Threads.RawNeighbor(m, false)
}

// neighborHit is a segment found adjacent to a query segment, together
// with which of its own extremes (high/low) faces the query.
type neighborHit struct {
	seg  *pinch.Segment
	high bool
}

// extremeNeighbors finds what is adjacent to s at its high (towardHigh) or
// low extreme: either the physically next/previous segment on s's own
// thread (an intra-node split surviving JoinTrivialBoundaries), or, if s
// sits at that extreme of its own thread, every staple co-member of s's
// block hopped across to the node-end it attaches to.
func (r *Reader) extremeNeighbors(s *pinch.Segment, towardHigh bool) []neighborHit {
	if phys := r.Threads.RawNeighbor(s, towardHigh); phys != nil {
		return []neighborHit{{seg: phys, high: !towardHigh}}
	}
	if s.Block == nil {
		return nil
	}
	var hits []neighborHit
	for _, m := range s.Block.Members {
		if !m.Thread.IsStaple {
			continue
		}
		other := r.staplePeer(m)
		if other == nil {
			continue
		}
		target := firstNodeSegment(other.Block)
		if target == nil {
			continue
		}
		hits = append(hits, neighborHit{seg: target, high: target.End() == target.Thread.Length})
	}
	return hits
}

// Readout runs joinTrivialBoundaries on the thread set and emits the
// output variation graph.
func (r *Reader) Readout() *vgraph.Graph {
	r.Threads.JoinTrivialBoundaries()

	g := vgraph.New()
	leaderNodeID := make(map[*pinch.Segment]int64)
	var nextID int64

	r.Threads.ForEachSegment(func(s *pinch.Segment) {
		if s.Thread.IsStaple {
			return
		}
		leader := leaderOfSegment(s)
		if _, ok := leaderNodeID[leader]; ok {
			return
		}
		nextID++
		leaderNodeID[leader] = nextID
		g.AddNode(vgraph.Node{ID: nextID, Sequence: r.sequenceForLeader(leader)})
	})

	r.Threads.ForEachSegment(func(s *pinch.Segment) {
		if s.Thread.IsStaple {
			return
		}
		fromID, ok := leaderNodeID[leaderOfSegment(s)]
		if !ok {
			return
		}
		for _, towardHigh := range [2]bool{false, true} {
			isEndFrom := towardHigh != s.Reversed
			for _, hit := range r.extremeNeighbors(s, towardHigh) {
				toID, ok := leaderNodeID[leaderOfSegment(hit.seg)]
				if !ok {
					continue
				}
				isEndTo := hit.high != hit.seg.Reversed
				g.AddEdge(vgraph.Edge{
					From:      fromID,
					To:        toID,
					FromStart: !isEndFrom,
					ToEnd:     isEndTo,
				})
			}
		}
	})

	return g
}
