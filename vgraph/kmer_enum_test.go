package vgraph_test

import (
	"testing"

	"github.com/adamnovak/corg/vgraph"
	"github.com/stretchr/testify/require"
)

func TestEnumerateKmersWithinOneNode(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "ACGTAC"})

	var found []string
	err := vgraph.EnumerateKmers(g, 3, 0, 2, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.Contains(t, found, "ACG")
	require.Contains(t, found, "CGT")
	require.Contains(t, found, "GTA")
	require.Contains(t, found, "TAC")
	require.Len(t, found, 4)
}

func TestEnumerateKmersCrossesForwardEdge(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	g.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	g.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: false, ToEnd: false})

	var found []string
	err := vgraph.EnumerateKmers(g, 4, 1, 1, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.Contains(t, found, "ACGT")
}

func TestEnumerateKmersUnbranchedCrossingIsFreeAtZeroBudget(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	g.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	g.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: false, ToEnd: false})

	var found []string
	err := vgraph.EnumerateKmers(g, 4, 0, 1, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.Contains(t, found, "ACGT")
}

func TestEnumerateKmersDropsOverBudgetAtABranch(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	g.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	g.AddNode(vgraph.Node{ID: 3, Sequence: "TT"})
	g.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: false, ToEnd: false})
	g.AddEdge(vgraph.Edge{From: 1, To: 3, FromStart: false, ToEnd: false})

	var found []string
	err := vgraph.EnumerateKmers(g, 4, 0, 1, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.NotContains(t, found, "ACGT")
	require.NotContains(t, found, "ACTT")

	found = nil
	err = vgraph.EnumerateKmers(g, 4, 1, 1, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.Contains(t, found, "ACGT")
	require.Contains(t, found, "ACTT")
}

func TestEnumerateKmersReverseEntry(t *testing.T) {
	g := vgraph.New()
	g.AddNode(vgraph.Node{ID: 1, Sequence: "AC"})
	g.AddNode(vgraph.Node{ID: 2, Sequence: "GT"})
	// Node 1's high end attaches to node 2's high end: node 2 is entered
	// reversed, so it contributes revcomp("GT") = "AC".
	g.AddEdge(vgraph.Edge{From: 1, To: 2, FromStart: false, ToEnd: true})

	var found []string
	err := vgraph.EnumerateKmers(g, 4, 1, 1, func(occ vgraph.Occurrence) {
		found = append(found, occ.Kmer)
	})
	require.NoError(t, err)
	require.Contains(t, found, "ACAC")
}
