// Package callgraph renders a multi-module reachability result as a
// generic node/edge graph for external tooling: Graphviz dot output or
// JSON export via the CLI's graph subcommand. This is purely a
// presentation layer over reach.Find and parse.ParsedModule — it never
// feeds back into cost calculation.
package callgraph

// NodeKind classifies one graph node.
type NodeKind string

const (
	KindModule      NodeKind = "Module"
	KindFunction    NodeKind = "Function"
	KindPlatformAPI NodeKind = "PlatformAPI"
)

// EdgeType classifies one graph edge.
type EdgeType string

const (
	EdgeImports EdgeType = "IMPORTS"
	EdgeDefines EdgeType = "DEFINES"
	EdgeCalls   EdgeType = "CALLS"
)

// Node is one module, function, or platform-API reference.
type Node struct {
	ID   string
	Kind NodeKind
	// Label is the human-readable name: a file path for a Module node,
	// "namespace.name" (or bare "name") for Function/PlatformAPI nodes.
	Label string
}

// Edge is one directed relationship between two node IDs.
type Edge struct {
	Src  string
	Type EdgeType
	Dst  string
}

// Graph is the full exported call graph.
type Graph struct {
	Nodes []Node
	Edges []Edge
}
