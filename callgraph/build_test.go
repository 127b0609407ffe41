package callgraph

import (
	"bytes"
	"strings"
	"testing"

	"ramcost/parse"
	"ramcost/reach"
)

func TestBuild_ModuleFunctionAndPlatformAPINodes(t *testing.T) {
	p := parse.NewParser()
	mod, err := p.ParseScript([]byte(`
export async function main(ns) {
	helper(ns);
}
function helper(ns) {
	ns.hack("x");
}
`), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	modules := []*parse.ParsedModule{mod}
	result := reach.Find(modules, parse.DefinedFunction{Name: "main"})
	g := Build(modules, result)

	var sawModule, sawMain, sawHelper, sawHack bool
	for _, n := range g.Nodes {
		switch {
		case n.Kind == KindModule:
			sawModule = true
		case n.Kind == KindFunction && n.Label == "main":
			sawMain = true
		case n.Kind == KindFunction && n.Label == "helper":
			sawHelper = true
		case n.Kind == KindPlatformAPI && n.Label == "ns.hack":
			sawHack = true
		}
	}
	if !sawModule || !sawMain || !sawHelper || !sawHack {
		t.Errorf("missing expected node kinds, got %+v", g.Nodes)
	}
}

func TestBuild_CallsEdgeBetweenFunctions(t *testing.T) {
	p := parse.NewParser()
	mod, err := p.ParseScript([]byte(`
export async function main(ns) {
	helper(ns);
}
function helper(ns) {}
`), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	modules := []*parse.ParsedModule{mod}
	result := reach.Find(modules, parse.DefinedFunction{Name: "main"})
	g := Build(modules, result)

	found := false
	for _, e := range g.Edges {
		if e.Type == EdgeCalls && strings.Contains(e.Src, "main") && strings.Contains(e.Dst, "helper") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a Calls edge from main to helper, got %+v", g.Edges)
	}
}

func TestWriteDot_ValidDigraph(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "module:", Kind: KindModule, Label: ""}},
		Edges: nil,
	}
	var buf bytes.Buffer
	if err := WriteDot(&buf, g); err != nil {
		t.Fatalf("WriteDot failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph callgraph {") {
		t.Errorf("expected digraph header, got %q", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Errorf("expected closing brace, got %q", out)
	}
}

func TestWriteJSON_IncludesNodeID(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Kind: KindFunction, Label: "a"}},
		Edges: []Edge{{Src: "a", Type: EdgeCalls, Dst: "b"}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"ID": "a"`) {
		t.Errorf("expected JSON to contain node ID, got %s", buf.String())
	}
}
