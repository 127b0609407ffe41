package parse

// DefinedFunction is a fully-qualified reference to either a declaration
// or a call site. Two DefinedFunction values are equal iff Name,
// Namespace, and FilePath are all equal — structural equality is the
// only comparison operation used against the call graph.
type DefinedFunction struct {
	Name      string
	Namespace string
	FilePath  string
}

// FunctionGraphNode is one declared function or class in a file.
// CalledFunctions preserves source order and may contain duplicates;
// order is not observable through the public contract.
type FunctionGraphNode struct {
	Fn              DefinedFunction
	CalledFunctions []DefinedFunction
}

// ImportEntry describes one import declaration. Imports is either
// exactly []string{"*"} (namespace import, non-empty Alias) or a list of
// named bindings (empty Alias) — no mixed form is representable.
type ImportEntry struct {
	FilePath string
	Alias    string
	Imports  []string
}

// IsNamespace reports whether this entry is a namespace-style import
// (import * as X, or a default import, both of which bind the whole
// module under one local name).
func (e ImportEntry) IsNamespace() bool {
	return len(e.Imports) == 1 && e.Imports[0] == "*"
}

// ParsedModule is one source file's parsed form: its imports and the
// function graph declared at its top level. ParsedModule is immutable
// after construction and lives only for the duration of one
// calculateRamUsage invocation.
type ParsedModule struct {
	FilePath        string
	ImportedModules []ImportEntry
	FunctionTree    []FunctionGraphNode
}

// FindNode returns the FunctionGraphNode in this module whose Fn matches
// fn exactly (filePath included), or nil if none does.
func (m *ParsedModule) FindNode(fn DefinedFunction) *FunctionGraphNode {
	for i := range m.FunctionTree {
		if m.FunctionTree[i].Fn == fn {
			return &m.FunctionTree[i]
		}
	}
	return nil
}

// FindByName returns the FunctionGraphNode declared in this module whose
// name matches and whose namespace is empty (a bare top-level
// declaration, as opposed to a re-exported or namespaced reference).
func (m *ParsedModule) FindByName(name string) *FunctionGraphNode {
	for i := range m.FunctionTree {
		if m.FunctionTree[i].Fn.Name == name && m.FunctionTree[i].Fn.Namespace == "" {
			return &m.FunctionTree[i]
		}
	}
	return nil
}
