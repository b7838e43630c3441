package merge

// Opts controls how two graphs are merged.
type Opts struct {
	// KmerSize enables k-mer merging when > 0. Zero disables it.
	KmerSize int
	// EdgeMax bounds the number of branching choice points a k-mer
	// traversal may cross before it is abandoned.
	EdgeMax int
	// KmersOnly skips path merging entirely. Requires KmerSize > 0.
	KmersOnly bool
	// Threads is the worker count for k-mer observation.
	Threads int
	// Verbose gates the per-node embedding progress log the original
	// tool printed unconditionally.
	Verbose bool
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	KmerSize:  0,
	EdgeMax:   0,
	KmersOnly: false,
	Threads:   1,
	Verbose:   false,
}
