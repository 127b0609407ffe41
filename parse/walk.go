package parse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// walkTopLevel performs the single top-level pass described in spec
// §4.1: dispatch on import declarations and function/class declarations,
// ignore everything else.
func walkTopLevel(root *sitter.Node, content []byte, filePath string, mod *ParsedModule) {
	for i := 0; i < int(root.ChildCount()); i++ {
		processTopLevelNode(root.Child(i), content, filePath, mod)
	}
}

func processTopLevelNode(node *sitter.Node, content []byte, filePath string, mod *ParsedModule) {
	switch node.Type() {
	case "import_statement":
		if entry := parseImportDeclaration(node, content); entry != nil {
			mod.ImportedModules = append(mod.ImportedModules, *entry)
		}

	case "function_declaration", "generator_function_declaration", "class_declaration":
		mod.FunctionTree = append(mod.FunctionTree, buildFunctionNode(node, content, filePath))

	case "export_statement":
		// export function foo() {} / export class Foo {} / export default ...
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			processTopLevelNode(decl, content, filePath, mod)
			return
		}
		if value := node.ChildByFieldName("value"); value != nil {
			processTopLevelNode(value, content, filePath, mod)
		}
	}
}

func buildFunctionNode(node *sitter.Node, content []byte, filePath string) FunctionGraphNode {
	fn := FunctionGraphNode{
		Fn: DefinedFunction{Name: declName(node, content), Namespace: "", FilePath: filePath},
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		body = node
	}
	walkWithinFunction(body, content, filePath, &fn)
	return fn
}

func declName(node *sitter.Node, content []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return n.Content(content)
	}
	if n := findChildType(node, "identifier"); n != nil {
		return n.Content(content)
	}
	if n := findChildType(node, "type_identifier"); n != nil {
		return n.Content(content)
	}
	return ""
}

// walkWithinFunction is the second recursive walker described in spec
// §4.1. It visits every descendant of a declaration's body in document
// order and records one DefinedFunction per call expression, new
// expression, or standalone member expression match. It never skips
// into the subtrees it has already classified — the walk is a plain
// DFS over the whole body, so a nested shape like `new Foo(ns).bar()`
// is matched once as the outer call and again as its callee is visited
// in turn, which is exactly how multiple edges fall out of one chained
// expression.
func walkWithinFunction(body *sitter.Node, content []byte, filePath string, acc *FunctionGraphNode) {
	if body == nil {
		return
	}
	iter := sitter.NewIterator(body, sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			break
		}
		switch n.Type() {
		case "call_expression":
			recordCall(n.ChildByFieldName("function"), content, filePath, acc)
		case "new_expression":
			recordCall(n.ChildByFieldName("constructor"), content, filePath, acc)
		case "member_expression":
			recordMemberReference(n, content, filePath, acc)
		}
	}
}

// recordCall implements the name/namespace extraction ladder from spec
// §4.1 for a call or new expression's callee.
func recordCall(callee *sitter.Node, content []byte, filePath string, acc *FunctionGraphNode) {
	name, namespace := resolveCallee(callee, content)
	if name == "" {
		return
	}
	acc.CalledFunctions = append(acc.CalledFunctions, DefinedFunction{
		Name: name, Namespace: namespace, FilePath: filePath,
	})
}

// resolveCallee computes (name, namespace) for a call/new callee by the
// first matching case:
//
//  1. callee is a bare identifier: foo()
//  2. callee is a two-deep property chain rooted at an identifier:
//     ns.hacknet.purchaseNode
//  3. otherwise, one-deep: ns.hack(), x.foo(), or returnNs(ns).get()
//     where the object is itself a call.
//
// This ladder is preserved literally, including the case-3 fallback
// through a call's own callee name — generalizing it to arbitrary
// chains is explicitly out of scope.
func resolveCallee(callee *sitter.Node, content []byte) (string, string) {
	if callee == nil {
		return "", ""
	}
	if callee.Type() == "identifier" {
		return callee.Content(content), ""
	}
	if callee.Type() != "member_expression" {
		return "", ""
	}

	object := callee.ChildByFieldName("object")
	property := callee.ChildByFieldName("property")
	if property == nil {
		return "", ""
	}
	name := property.Content(content)

	if namespace, ok := twoDeepNamespace(object, content); ok {
		return name, namespace
	}

	namespace := identName(object, content)
	if namespace == "" && object != nil && object.Type() == "call_expression" {
		namespace = identName(object.ChildByFieldName("function"), content)
	}
	return name, namespace
}

// twoDeepNamespace extracts "ident.property" when object is itself a
// member_expression rooted at a bare identifier, e.g. the "ns.stanek"
// in "ns.stanek.get". Used by both the call/new callee ladder and the
// standalone member-expression rule so a two-deep chain resolves to
// the same sub-API namespace whether it's invoked or just referenced.
func twoDeepNamespace(object *sitter.Node, content []byte) (string, bool) {
	if object == nil || object.Type() != "member_expression" {
		return "", false
	}
	innerObject := object.ChildByFieldName("object")
	innerProperty := object.ChildByFieldName("property")
	if innerObject == nil || innerObject.Type() != "identifier" || innerProperty == nil {
		return "", false
	}
	return innerObject.Content(content) + "." + innerProperty.Content(content), true
}

// recordMemberReference implements the standalone member-expression rule:
// a bound function reference passed by name without being invoked here
// (const g = ns.stanek.get) is still charged, at the point of reference.
// Namespace extraction follows the same two-deep ladder as resolveCallee
// so a chain like ns.stanek.get resolves to ("get", "ns.stanek") instead
// of falling back to a bare, unqualified "get".
func recordMemberReference(node *sitter.Node, content []byte, filePath string, acc *FunctionGraphNode) {
	property := node.ChildByFieldName("property")
	if property == nil {
		return
	}
	name := property.Content(content)
	if name == "" {
		return
	}

	object := node.ChildByFieldName("object")
	namespace, ok := twoDeepNamespace(object, content)
	if !ok {
		namespace = identName(object, content)
	}

	acc.CalledFunctions = append(acc.CalledFunctions, DefinedFunction{
		Name: name, Namespace: namespace, FilePath: filePath,
	})
}

func identName(n *sitter.Node, content []byte) string {
	if n != nil && n.Type() == "identifier" {
		return n.Content(content)
	}
	return ""
}

// parseImportDeclaration classifies one import_statement per spec §4.1:
// namespace import (default or `* as X`) yields Imports == ["*"] with a
// non-empty Alias; named import yields the local binding names with an
// empty Alias.
func parseImportDeclaration(node *sitter.Node, content []byte) *ImportEntry {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return nil
	}
	path := unquote(sourceNode.Content(content))

	clause := findChildType(node, "import_clause")
	if clause == nil {
		return &ImportEntry{FilePath: path}
	}

	if ns := findChildType(clause, "namespace_import"); ns != nil {
		alias := ""
		if id := findChildType(ns, "identifier"); id != nil {
			alias = id.Content(content)
		}
		return &ImportEntry{FilePath: path, Alias: alias, Imports: []string{"*"}}
	}

	if named := findChildType(clause, "named_imports"); named != nil {
		return &ImportEntry{FilePath: path, Imports: parseNamedImports(named, content)}
	}

	if id := findChildType(clause, "identifier"); id != nil {
		return &ImportEntry{FilePath: path, Alias: id.Content(content), Imports: []string{"*"}}
	}

	return &ImportEntry{FilePath: path}
}

func parseNamedImports(named *sitter.Node, content []byte) []string {
	var out []string
	for i := 0; i < int(named.ChildCount()); i++ {
		spec := named.Child(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		local := spec.ChildByFieldName("alias")
		if local == nil {
			local = spec.ChildByFieldName("name")
		}
		if local != nil {
			out = append(out, local.Content(content))
		}
	}
	return out
}

func findChildType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

func unquote(s string) string {
	return strings.Trim(s, "\"'`")
}
