package merge

// Stats represents high-level statistics from one merge run.
type Stats struct {
	// InputNodes/InputEdges are the combined node/edge counts of both
	// input graphs before merging.
	InputNodes int
	InputEdges int
	// Staples is the number of edge-encoding synthetic threads created.
	Staples int
	// SharedPathNames is the number of path names present in both graphs.
	SharedPathNames int
	// PathPinches is the number of pinch calls issued while merging paths.
	PathPinches int
	// UniqueKmersA/UniqueKmersB count kmers that survived dedup as
	// unambiguous in each graph.
	UniqueKmersA int
	UniqueKmersB int
	// KmerPinches is the number of pinch calls issued while merging kmers.
	KmerPinches int
	// OutputNodes/OutputEdges are the sizes of the merged output graph.
	OutputNodes int
	OutputEdges int
}

// Merge adds the field values of the two Stats objects and creates a new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.InputNodes += o.InputNodes
	s.InputEdges += o.InputEdges
	s.Staples += o.Staples
	s.SharedPathNames += o.SharedPathNames
	s.PathPinches += o.PathPinches
	s.UniqueKmersA += o.UniqueKmersA
	s.UniqueKmersB += o.UniqueKmersB
	s.KmerPinches += o.KmerPinches
	s.OutputNodes += o.OutputNodes
	s.OutputEdges += o.OutputEdges
	return s
}
