// corg merges two variation graphs along their shared named paths and,
// optionally, their mutually unique kmers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/adamnovak/corg/merge"
	"github.com/adamnovak/corg/vgraph"
)

func usage() {
	fmt.Fprintln(os.Stderr, `
corg merges two JSON-lines variation graphs into one, welding nodes and
paths that agree along shared named paths (and, with -k, along mutually
unique kmers) into single output nodes.

Usage:
  corg [options] GRAPH1 GRAPH2

  Required Positional Arguments:
    GRAPH1, GRAPH2    Paths to the two input graphs, in the JSON-lines
                       format vgraph.Read/Write produce.

The merged graph is written to stdout in the same format.`)
	os.Exit(1)
}

func readGraph(ctx context.Context, path string) *vgraph.Graph {
	f, err := file.Open(ctx, path)
	if err != nil {
		log.Fatalf("opening %s: %v", path, err)
	}
	g, readErr := vgraph.Read(f.Reader(ctx))
	once := errors.Once{}
	once.Set(readErr)
	once.Set(f.Close(ctx))
	if err := once.Err(); err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}
	return g
}

func main() {
	flag.Usage = usage

	opts := merge.DefaultOpts
	flag.IntVar(&opts.KmerSize, "kmer-size", merge.DefaultOpts.KmerSize, "If greater than zero, also merge nodes that share a uniquely occurring kmer of this length.")
	flag.IntVar(&opts.KmerSize, "k", merge.DefaultOpts.KmerSize, "Shorthand for -kmer-size.")
	flag.IntVar(&opts.EdgeMax, "edge-max", merge.DefaultOpts.EdgeMax, "Upper bound on the number of branching choice points a kmer walk may cross.")
	flag.IntVar(&opts.EdgeMax, "e", merge.DefaultOpts.EdgeMax, "Shorthand for -edge-max.")
	flag.BoolVar(&opts.KmersOnly, "kmers-only", merge.DefaultOpts.KmersOnly, "Skip path-name merging entirely and merge only via -kmer-size.")
	flag.BoolVar(&opts.KmersOnly, "o", merge.DefaultOpts.KmersOnly, "Shorthand for -kmers-only.")
	flag.IntVar(&opts.Threads, "threads", merge.DefaultOpts.Threads, "Worker count for kmer observation.")
	flag.IntVar(&opts.Threads, "t", merge.DefaultOpts.Threads, "Shorthand for -threads.")
	flag.BoolVar(&opts.Verbose, "verbose", merge.DefaultOpts.Verbose, "Log each node as it is embedded.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flag.NArg() != 2 {
		usage()
	}
	path1, path2 := flag.Arg(0), flag.Arg(1)

	graphA := readGraph(ctx, path1)
	graphB := readGraph(ctx, path2)

	out, stats, err := merge.Merge(graphA, graphB, opts)
	if err != nil {
		if merr, ok := err.(*merge.Error); ok && merr.Kind == merge.UsageError {
			fmt.Fprintln(os.Stderr, merr.Error())
			usage()
		}
		log.Fatal(err)
	}
	log.Printf("Stats: %+v", stats)

	if err := out.Write(os.Stdout); err != nil {
		log.Fatalf("writing merged graph: %v", err)
	}
}
