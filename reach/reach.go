// Package reach implements the reachability and classification stage
// of the RAM-cost analyzer (spec §4.3): a worklist traversal starting
// from an entry function that splits every reached callee into
// resolved (has a declaration we can recurse into) or unresolved
// (charged against the cost table).
package reach

import "ramcost/parse"

// DefaultEntry is the entry DefinedFunction used when the host does not
// name one explicitly.
var DefaultEntry = parse.DefinedFunction{Name: "main", Namespace: "", FilePath: ""}

// Result is the disjoint resolved/unresolved split produced by Find.
type Result struct {
	Resolved   []parse.DefinedFunction
	Unresolved []parse.DefinedFunction
}

// Find runs the single worklist traversal described in spec §4.3 over
// modules starting from entry. "Already enqueued" is tested, by
// structural equality, against every DefinedFunction ever placed on the
// worklist (classified or still waiting) — so a function called by
// several callers, or several times by one, is enqueued and classified
// only once, and neither result list holds duplicates. A resolved entry
// is the call reference itself (the caller's file path, and the import
// alias as namespace), not the declaration it resolved to.
func Find(modules []*parse.ParsedModule, entry parse.DefinedFunction) Result {
	byPath := make(map[string]*parse.ParsedModule, len(modules))
	for _, m := range modules {
		byPath[m.FilePath] = m
	}

	var result Result
	// queued tracks everything ever placed on the worklist — including
	// the entry function itself — so a cycle back to an already
	// classified function never re-enqueues it.
	queued := map[parse.DefinedFunction]bool{entry: true}
	worklist := []parse.DefinedFunction{entry}

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		mod, ok := byPath[current.FilePath]
		if !ok {
			// The function's declaring module isn't part of this
			// invocation's closure; drop it silently per spec §4.3 step 1.
			continue
		}

		node := resolveInModule(mod, current, byPath)
		if node == nil {
			result.Unresolved = append(result.Unresolved, current)
			continue
		}

		result.Resolved = append(result.Resolved, current)
		for _, callee := range node.CalledFunctions {
			if queued[callee] {
				continue
			}
			queued[callee] = true
			worklist = append(worklist, callee)
		}
	}

	return result
}

// resolveInModule looks for current's declaration first locally, then
// via mod's imports (spec §4.3 steps 2-3).
func resolveInModule(mod *parse.ParsedModule, current parse.DefinedFunction, byPath map[string]*parse.ParsedModule) *parse.FunctionGraphNode {
	if node := mod.FindNode(current); node != nil {
		return node
	}

	for _, imp := range mod.ImportedModules {
		if imp.Alias != current.Namespace {
			continue
		}
		if !importsName(imp, current.Name) {
			continue
		}
		target, ok := byPath[normalizedImportPath(imp.FilePath)]
		if !ok {
			continue
		}
		if node := target.FindByName(current.Name); node != nil {
			return node
		}
	}

	return nil
}

func importsName(imp parse.ImportEntry, name string) bool {
	for _, n := range imp.Imports {
		if n == name || n == "*" {
			return true
		}
	}
	return false
}

// normalizedImportPath mirrors the link resolver's "./" stripping so an
// ImportEntry.FilePath recorded at parse time (e.g. "./lib") matches the
// module's normalized filePath (e.g. "lib") used as the map key.
func normalizedImportPath(raw string) string {
	if len(raw) >= 2 && raw[0] == '.' && raw[1] == '/' {
		return raw[2:]
	}
	return raw
}
