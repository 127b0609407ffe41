package callgraph

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteDot renders g as a Graphviz dot digraph.
func WriteDot(w io.Writer, g Graph) error {
	if _, err := fmt.Fprintln(w, "digraph callgraph {"); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if _, err := fmt.Fprintf(w, "\t%q [label=%q, shape=%s];\n", n.ID, n.Label, dotShape(n.Kind)); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "\t%q -> %q [label=%q];\n", e.Src, e.Dst, e.Type); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func dotShape(k NodeKind) string {
	switch k {
	case KindModule:
		return "box"
	case KindPlatformAPI:
		return "diamond"
	default:
		return "ellipse"
	}
}

// WriteJSON renders g as indented JSON.
func WriteJSON(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
