// Package parse implements the module parser stage of the RAM-cost
// analyzer: it walks the AST of a single source file and extracts, for
// every top-level function or class declaration, the list of call sites
// reachable from it.
package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Range is a source code range expressed as 0-based [line, column] pairs.
type Range struct {
	Start [2]int `json:"start"`
	End   [2]int `json:"end"`
}

func nodeRange(n *sitter.Node) Range {
	start := n.StartPoint()
	end := n.EndPoint()
	return Range{
		Start: [2]int{int(start.Row), int(start.Column)},
		End:   [2]int{int(end.Row), int(end.Column)},
	}
}

// SyntaxError reports that the AST front end rejected a script's source.
type SyntaxError struct {
	FilePath string
	Err      error
}

func (e *SyntaxError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("syntax error in entry script: %v", e.Err)
	}
	return fmt.Sprintf("syntax error in %s: %v", e.FilePath, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Code is the fixed negative cost used by the legacy error-as-cost
// calling convention (see ramcost.CalculateRamUsageLegacy).
func (e *SyntaxError) Code() int { return -1 }

var errMalformedSource = fmt.Errorf("source could not be parsed")

// Parser runs the AST front end (tree-sitter, javascript grammar) once
// per call and performs the module-parser walk over the result.
//
// A single Parser is reused across every file resolved during one
// calculateRamUsage invocation; it holds no per-file state.
type Parser struct {
	sitterParser *sitter.Parser
}

// NewParser constructs a Parser configured for the JavaScript-family
// grammar used by both .js and .ts game scripts.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &Parser{sitterParser: p}
}

// ParseScript runs one top-level walk over source, producing a
// ParsedModule. filePath labels every DefinedFunction produced from this
// source; pass "" for the entry-point script.
func (p *Parser) ParseScript(content []byte, filePath string) (*ParsedModule, error) {
	tree, err := p.sitterParser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, &SyntaxError{FilePath: filePath, Err: err}
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, &SyntaxError{FilePath: filePath, Err: errMalformedSource}
	}

	mod := &ParsedModule{FilePath: filePath}
	walkTopLevel(root, content, filePath, mod)
	return mod, nil
}
