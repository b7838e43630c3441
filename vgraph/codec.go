package vgraph

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// The on-disk format is JSON-lines: one JSON object per line, tagged by a
// "type" field of "node", "edge", or "path". This is not the variation-graph
// wire format the core was built against (that decoder is out of scope, per
// the core's spec), but a concrete stand-in a complete tool needs to read
// and write something.

type wireRecord struct {
	Type string `json:"type"`
	Node *Node  `json:"node,omitempty"`
	Edge *Edge  `json:"edge,omitempty"`
	Path *Path  `json:"path,omitempty"`
}

// Read parses a JSON-lines variation graph from r.
func Read(r io.Reader) (*Graph, error) {
	g := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var rec wireRecord
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, errors.Wrapf(err, "vgraph: parse error on line %d", line)
		}
		switch rec.Type {
		case "node":
			if rec.Node == nil {
				return nil, errors.Errorf("vgraph: line %d: node record missing \"node\" field", line)
			}
			g.AddNode(*rec.Node)
		case "edge":
			if rec.Edge == nil {
				return nil, errors.Errorf("vgraph: line %d: edge record missing \"edge\" field", line)
			}
			g.AddEdge(*rec.Edge)
		case "path":
			if rec.Path == nil {
				return nil, errors.Errorf("vgraph: line %d: path record missing \"path\" field", line)
			}
			g.AddPath(*rec.Path)
		default:
			return nil, errors.Errorf("vgraph: line %d: unknown record type %q", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "vgraph: read error")
	}
	return g, nil
}

// Write serializes g as JSON-lines: all nodes, then all edges, then all
// paths, each in the order ForEachNode/ForEachEdge/ForEachPath visits them.
func (g *Graph) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	var writeErr error
	g.ForEachNode(func(n Node) {
		if writeErr != nil {
			return
		}
		node := n
		writeErr = enc.Encode(wireRecord{Type: "node", Node: &node})
	})
	if writeErr != nil {
		return errors.Wrap(writeErr, "vgraph: write error")
	}
	g.ForEachEdge(func(e Edge) {
		if writeErr != nil {
			return
		}
		edge := e
		writeErr = enc.Encode(wireRecord{Type: "edge", Edge: &edge})
	})
	if writeErr != nil {
		return errors.Wrap(writeErr, "vgraph: write error")
	}
	g.ForEachPath(func(p Path) {
		if writeErr != nil {
			return
		}
		path := p
		writeErr = enc.Encode(wireRecord{Type: "path", Path: &path})
	})
	if writeErr != nil {
		return errors.Wrap(writeErr, "vgraph: write error")
	}
	return nil
}
