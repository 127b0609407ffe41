package cost

import (
	"testing"

	"ramcost/parse"
)

func testTable() *Table {
	t := NewTable()
	t.BaseCost = 1.6
	t.Entries["hack"] = Const(0.1)
	t.Entries["grow"] = Const(0.15)
	t.SubAPIs["stanek"] = map[string]Value{"get": Const(0.4)}
	t.SubAPIs["hacknet"] = map[string]Value{"purchaseNode": Const(0)}
	t.Special["ns.hacknet"] = Entry{Type: EntryNamespace, Name: "ns.hacknet", Cost: 1.0}
	return t
}

func TestReduce_BaseCostOnly(t *testing.T) {
	calc := Reduce(nil, testTable(), nil)
	if calc.Cost != 1.6 {
		t.Errorf("expected cost 1.6, got %v", calc.Cost)
	}
	if len(calc.Entries) != 1 || calc.Entries[0].Name != "baseCost" {
		t.Fatalf("expected a single baseCost entry, got %+v", calc.Entries)
	}
}

func TestReduce_DeduplicatesRepeatedCalls(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "hack", Namespace: "ns"},
		{Name: "hack", Namespace: "ns"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	base, hack := 1.6, 0.1
	if calc.Cost != base+hack {
		t.Errorf("expected base+hack exactly once, got %v", calc.Cost)
	}
	count := 0
	for _, e := range calc.Entries {
		if e.Name == "hack" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected hack charged exactly once despite 2 calls, got %d", count)
	}
}

func TestReduce_MultipleDistinctCalls(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "hack", Namespace: "X"},
		{Name: "grow", Namespace: "X"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	want := 1.6 + 0.1 + 0.15
	if calc.Cost != want {
		t.Errorf("expected %v, got %v", want, calc.Cost)
	}
}

func TestReduce_SubAPILookup(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "get", Namespace: "ns.stanek"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	if calc.Cost != 1.6+0.4 {
		t.Errorf("expected base+stanek.get, got %v", calc.Cost)
	}
}

func TestReduce_TwoFileImport(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "hack", Namespace: "ns", FilePath: "lib"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	base, hack := 1.6, 0.1
	if calc.Cost != base+hack {
		t.Errorf("expected base+hack regardless of which file declared the call, got %v", calc.Cost)
	}
}

func TestReduce_UnknownIdentifierDropsToZero(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "get", Namespace: "billybob"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	if calc.Cost != 1.6 {
		t.Errorf("expected no charge for an unrecognized identifier, got %v", calc.Cost)
	}
}

func TestReduce_FreeFunctionNamedLikeSubAPIEntryIsZero(t *testing.T) {
	// purchaseNode with no namespace looks up costTable["purchaseNode"]
	// at the top level, not costTable["hacknet"]["purchaseNode"] —
	// documented false negative (spec §9).
	unresolved := []parse.DefinedFunction{
		{Name: "purchaseNode", Namespace: ""},
	}
	calc := Reduce(unresolved, testTable(), nil)
	if calc.Cost != 1.6 {
		t.Errorf("expected base cost only for a namespace-less purchaseNode, got %v", calc.Cost)
	}
}

func TestReduce_SpecialNamespaceChargedOnce(t *testing.T) {
	unresolved := []parse.DefinedFunction{
		{Name: "anything", Namespace: "ns.hacknet"},
	}
	calc := Reduce(unresolved, testTable(), nil)
	if calc.Cost != 1.6+1.0 {
		t.Errorf("expected base+special ns.hacknet charge, got %v", calc.Cost)
	}
}

type fakePlayer struct{ files int }

func (p fakePlayer) SourceFileCount() int { return p.files }

func TestReduce_PlayerDependentEntry(t *testing.T) {
	table := testTable()
	table.Entries["singularity"] = Func(func(player any) float64 {
		p := player.(fakePlayer)
		return float64(p.files) * 1000
	})

	calc := Reduce([]parse.DefinedFunction{{Name: "singularity", Namespace: ""}}, table, fakePlayer{files: 3})
	if calc.Cost != 1.6+3000 {
		t.Errorf("expected base+3000, got %v", calc.Cost)
	}
}

func TestLoadTableYAML(t *testing.T) {
	doc := []byte(`
baseCost: 1.6
entries:
  hack: 0.1
  grow: 0.15
  singularity:
    playerFn: sourceFileCount
    scale: 1000
subApis:
  stanek:
    get: 0.4
special:
  ns.hacknet:
    type: ns
    cost: 1.0
`)
	table, err := LoadTableYAML(doc)
	if err != nil {
		t.Fatalf("LoadTableYAML failed: %v", err)
	}
	if table.BaseCost != 1.6 {
		t.Errorf("expected baseCost 1.6, got %v", table.BaseCost)
	}
	if table.Entries["hack"].Resolve(nil) != 0.1 {
		t.Errorf("expected hack cost 0.1")
	}
	if table.SubAPIs["stanek"]["get"].Resolve(nil) != 0.4 {
		t.Errorf("expected stanek.get cost 0.4")
	}
	got := table.Entries["singularity"].Resolve(fakePlayer{files: 2})
	if got != 2000 {
		t.Errorf("expected player-dependent singularity cost 2000, got %v", got)
	}
	if table.Special["ns.hacknet"].Cost != 1.0 {
		t.Errorf("expected special ns.hacknet cost 1.0, got %+v", table.Special["ns.hacknet"])
	}
}
