package merge_test

import (
	"testing"

	"github.com/adamnovak/corg/merge"
	"github.com/adamnovak/corg/pinch"
	"github.com/adamnovak/corg/vgraph"
	"github.com/stretchr/testify/require"
)

func twoNodeGraph() *vgraph.Graph {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	g.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	g.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: true, ToEnd: false})
	return g
}

func TestEmbedAllocatesOneThreadPerNodeAndOneStaplePerEdge(t *testing.T) {
	g := twoNodeGraph()
	threads := pinch.NewThreadSet()
	defer threads.Destroy()
	seqs := make(merge.ThreadSequences)
	ids := &merge.IDAllocator{}

	e := merge.NewEmbedder(g, threads, seqs, ids, "g")
	nodes, edges, staples, err := e.Embed()
	require.NoError(t, err)
	require.Equal(t, 2, nodes)
	require.Equal(t, 1, edges)
	require.Equal(t, 1, staples)

	entry1, err := e.Embedding.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, "AC", seqs[entry1.Thread])
	entry2, err := e.Embedding.Lookup(2)
	require.NoError(t, err)
	require.Equal(t, "GT", seqs[entry2.Thread])

	var stapleCount int
	threads.ForEachThread(func(th *pinch.Thread) {
		if th.IsStaple {
			stapleCount++
			require.Equal(t, 2, th.Length)
		}
	})
	require.Equal(t, 1, stapleCount)
}

func TestEmbedWeldsStapleAtTheCorrectNodeEnds(t *testing.T) {
	// FromStart=true, ToEnd=false means the edge leaves node 1's low end
	// and enters node 2's low end.
	g := twoNodeGraph()
	threads := pinch.NewThreadSet()
	defer threads.Destroy()
	seqs := make(merge.ThreadSequences)
	ids := &merge.IDAllocator{}

	e := merge.NewEmbedder(g, threads, seqs, ids, "g")
	_, _, _, err := e.Embed()
	require.NoError(t, err)

	entry1, _ := e.Embedding.Lookup(1)
	entry2, _ := e.Embedding.Lookup(2)
	t1 := threads.Thread(entry1.Thread)
	t2 := threads.Thread(entry2.Thread)

	var low1Block, low2Block *pinch.Block
	t1.ForEachSegment(func(s *pinch.Segment) {
		if s.Start == 0 {
			low1Block = s.Block
		}
	})
	t2.ForEachSegment(func(s *pinch.Segment) {
		if s.Start == 0 {
			low2Block = s.Block
		}
	})
	require.NotNil(t, low1Block)
	require.NotNil(t, low2Block)
	require.NotEqual(t, low1Block, low2Block, "the two node ends are welded to distinct staple bases, not to each other directly")

	var sawStapleOnLow1 bool
	for _, m := range low1Block.Members {
		if m.Thread.IsStaple {
			sawStapleOnLow1 = true
		}
	}
	require.True(t, sawStapleOnLow1)
}

func TestEmbedMissingEdgeEndpointIsAMissingEmbeddingError(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "A"})
	g.AddEdge(vgraph.Edge{From: 1, To: 99})

	threads := pinch.NewThreadSet()
	defer threads.Destroy()
	e := merge.NewEmbedder(g, threads, make(merge.ThreadSequences), &merge.IDAllocator{}, "g")
	_, _, _, err := e.Embed()
	require.Error(t, err)
	var merr *merge.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, merge.MissingEmbedding, merr.Kind)
}
