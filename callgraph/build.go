package callgraph

import (
	"sort"

	"ramcost/parse"
	"ramcost/reach"
)

// fnID is the stable node ID for a DefinedFunction: its full dotted
// reference, scoped by declaring file so two files' same-named
// functions never collide.
func fnID(fn parse.DefinedFunction) string {
	id := fn.Name
	if fn.Namespace != "" {
		id = fn.Namespace + "." + id
	}
	return fn.FilePath + "#" + id
}

func fnLabel(fn parse.DefinedFunction) string {
	if fn.Namespace == "" {
		return fn.Name
	}
	return fn.Namespace + "." + fn.Name
}

// Build renders modules and the reach.Result computed over them into a
// Graph: one Module node per module, an Imports edge per import
// declaration, and, for each declaration whose own DefinedFunction is in
// result.Resolved, a Function node, a Defines edge and a Calls edge per
// call recorded in its body (each callee becomes a Function node if it is
// in result.Resolved, else a PlatformAPI node). Resolved entries carry
// the caller's file path, so a declaration reached only through an import
// appears only as a callee node of its caller; its own body's calls are
// not drawn.
func Build(modules []*parse.ParsedModule, result reach.Result) Graph {
	var g Graph
	seenNode := make(map[string]bool)
	addNode := func(n Node) {
		if seenNode[n.ID] {
			return
		}
		seenNode[n.ID] = true
		g.Nodes = append(g.Nodes, n)
	}

	resolvedSet := make(map[parse.DefinedFunction]bool, len(result.Resolved))
	for _, fn := range result.Resolved {
		resolvedSet[fn] = true
	}

	for _, mod := range modules {
		moduleID := "module:" + mod.FilePath
		addNode(Node{ID: moduleID, Kind: KindModule, Label: mod.FilePath})

		for _, imp := range mod.ImportedModules {
			g.Edges = append(g.Edges, Edge{Src: moduleID, Type: EdgeImports, Dst: "module:" + imp.FilePath})
		}

		for _, node := range mod.FunctionTree {
			if !resolvedSet[node.Fn] {
				continue
			}
			fID := fnID(node.Fn)
			addNode(Node{ID: fID, Kind: KindFunction, Label: fnLabel(node.Fn)})
			g.Edges = append(g.Edges, Edge{Src: moduleID, Type: EdgeDefines, Dst: fID})

			for _, callee := range node.CalledFunctions {
				calleeID := fnID(callee)
				if resolvedSet[callee] {
					addNode(Node{ID: calleeID, Kind: KindFunction, Label: fnLabel(callee)})
				} else {
					addNode(Node{ID: calleeID, Kind: KindPlatformAPI, Label: fnLabel(callee)})
				}
				g.Edges = append(g.Edges, Edge{Src: fID, Type: EdgeCalls, Dst: calleeID})
			}
		}
	}

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Src != g.Edges[j].Src {
			return g.Edges[i].Src < g.Edges[j].Src
		}
		return g.Edges[i].Dst < g.Edges[j].Dst
	})

	return g
}
