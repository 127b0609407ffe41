package parse

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// DeclarationSources runs the AST front end over content and returns the
// literal source text of every exported top-level function or class
// declaration, without its export wrapper; declarations that are not
// exported are left out. The link resolver uses this
// to synthesize a function-source bag out of a remote module it has no
// way to actually execute (spec §4.2's "evaluate" step is approximated
// statically rather than run through a JavaScript VM).
func (p *Parser) DeclarationSources(content []byte) ([]string, error) {
	tree, err := p.sitterParser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, &SyntaxError{Err: errMalformedSource}
	}

	var out []string
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "export_statement" {
			continue
		}
		collectDeclarationSource(child, content, &out)
	}
	return out, nil
}

func collectDeclarationSource(node *sitter.Node, content []byte, out *[]string) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		*out = append(*out, node.Content(content))
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			collectDeclarationSource(decl, content, out)
		}
	}
}
