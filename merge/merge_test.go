package merge_test

import (
	"testing"

	"github.com/adamnovak/corg/merge"
	"github.com/adamnovak/corg/vgraph"
	"github.com/stretchr/testify/require"
)

func pathOf(name string, nodeID int64, isReverse bool) vgraph.Path {
	return vgraph.Path{Name: name, Mappings: []vgraph.Mapping{
		{Position: vgraph.Position{NodeID: nodeID, IsReverse: isReverse}},
	}}
}

// TestMergeIdenticalSingleNodeGraphs covers two graphs each holding a lone
// node "ACGT" named identically by path "p": the merge must collapse them
// into a single output node with no edges.
func TestMergeIdenticalSingleNodeGraphs(t *testing.T) {
	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: "ACGT"})
	a.AddPath(pathOf("p", 1, false))

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 1, Sequence: "ACGT"})
	b.AddPath(pathOf("p", 1, false))

	out, stats, err := merge.Merge(a, b, merge.DefaultOpts)
	require.NoError(t, err)
	require.Len(t, out.Nodes, 1)
	require.Len(t, out.Edges, 0)
	require.Equal(t, 1, stats.SharedPathNames)
	for _, n := range out.Nodes {
		require.Equal(t, "ACGT", n.Sequence)
	}
}

// TestMergeFusesAcrossABreakViaSharedPath covers graph A split into nodes
// "AC" and "GT" joined by an edge, fused via a shared path against graph
// B's single "ACGT" node.
func TestMergeFusesAcrossABreakViaSharedPath(t *testing.T) {
	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	a.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	a.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: false, ToEnd: false})
	a.AddPath(vgraph.Path{Name: "p", Mappings: []vgraph.Mapping{
		{Position: vgraph.Position{NodeID: 1}},
		{Position: vgraph.Position{NodeID: 2}},
	}})

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 10, Sequence: "ACGT"})
	b.AddPath(pathOf("p", 10, false))

	out, _, err := merge.Merge(a, b, merge.DefaultOpts)
	require.NoError(t, err)
	require.Len(t, out.Nodes, 1)
	for _, n := range out.Nodes {
		require.Equal(t, "ACGT", n.Sequence)
	}
}

// TestMergeMismatchedPathLengthIsFatal covers a shared path name whose
// summed effective length differs between the two graphs.
func TestMergeMismatchedPathLengthIsFatal(t *testing.T) {
	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: "ACGT"})
	a.AddPath(pathOf("p", 1, false))

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 1, Sequence: "ACGTA"})
	b.AddPath(pathOf("p", 1, false))

	_, _, err := merge.Merge(a, b, merge.DefaultOpts)
	require.Error(t, err)
	var merr *merge.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, merge.PathLengthMismatch, merr.Kind)
}

// TestMergeReverseOrientedMappingFusesWithCorrectOrientation covers graph
// A's path visiting its node forward against graph B's path visiting its
// node in reverse: the two still fuse into one node, readable as "ACGT"
// along the shared path.
func TestMergeReverseOrientedMappingFusesWithCorrectOrientation(t *testing.T) {
	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: "ACGT"})
	a.AddPath(pathOf("p", 1, false))

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 20, Sequence: "ACGT"})
	b.AddPath(vgraph.Path{Name: "p", Mappings: []vgraph.Mapping{
		{Position: vgraph.Position{NodeID: 20, Offset: 3, IsReverse: true}},
	}})

	out, _, err := merge.Merge(a, b, merge.DefaultOpts)
	require.NoError(t, err)
	require.Len(t, out.Nodes, 1)
	for _, n := range out.Nodes {
		require.True(t, n.Sequence == "ACGT" || n.Sequence == vgraph.ReverseComplement("ACGT"))
	}
}

// TestMergeKmerOnlyCollapsesAUniqueSharedKmer covers two graphs that share
// no path names at all but do share one unique long kmer: with a large
// enough -k, at least one pinch is issued and the graphs collapse.
func TestMergeKmerOnlyCollapsesAUniqueSharedKmer(t *testing.T) {
	shared := "ACGTACGTAC" // 10-mer, unique to both one-node graphs below

	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: shared})

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 2, Sequence: shared})

	opts := merge.DefaultOpts
	opts.KmerSize = 10
	opts.KmersOnly = true

	out, stats, err := merge.Merge(a, b, opts)
	require.NoError(t, err)
	require.Greater(t, stats.KmerPinches, 0)
	require.Len(t, out.Nodes, 1)
}

// TestMergeKmersOnlyWithoutKmerSizeIsAUsageError covers the invalid option
// combination: -o without a positive -k.
func TestMergeKmersOnlyWithoutKmerSizeIsAUsageError(t *testing.T) {
	a := vgraph.New()
	b := vgraph.New()
	opts := merge.DefaultOpts
	opts.KmersOnly = true

	_, _, err := merge.Merge(a, b, opts)
	require.Error(t, err)
	var merr *merge.Error
	require.ErrorAs(t, err, &merr)
	require.Equal(t, merge.UsageError, merr.Kind)
}

// TestMergeNoSharedSignalLeavesTheGraphsDisjoint covers two graphs that
// share no path names and no unique kmer (k-mer merging disabled): the
// output is the disjoint union of both inputs' nodes.
func TestMergeNoSharedSignalLeavesTheGraphsDisjoint(t *testing.T) {
	a := vgraph.New()
	a.AddNode(vgraph.Node{ID: 1, Sequence: "AAAA"})

	b := vgraph.New()
	b.AddNode(vgraph.Node{ID: 1, Sequence: "CCCC"})

	out, stats, err := merge.Merge(a, b, merge.DefaultOpts)
	require.NoError(t, err)
	require.Equal(t, 0, stats.SharedPathNames)
	require.Len(t, out.Nodes, 2)
}
