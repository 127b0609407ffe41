package costdiff

import (
	"testing"

	"ramcost/cost"
)

func TestCompare_EntryAdded(t *testing.T) {
	before := cost.Calculation{Cost: 1.6, Entries: []cost.Entry{{Type: cost.EntryMisc, Name: "baseCost", Cost: 1.6}}}
	after := cost.Calculation{Cost: 1.7, Entries: []cost.Entry{
		{Type: cost.EntryMisc, Name: "baseCost", Cost: 1.6},
		{Type: cost.EntryNamespace, Name: "hack", Cost: 0.1},
	}}

	diff := Compare(before, after)
	if len(diff.Changes) != 1 || diff.Changes[0].Kind != EntryAdded || diff.Changes[0].Name != "hack" {
		t.Fatalf("expected a single added hack entry, got %+v", diff.Changes)
	}
}

func TestCompare_EntryRemoved(t *testing.T) {
	before := cost.Calculation{Cost: 1.7, Entries: []cost.Entry{
		{Type: cost.EntryMisc, Name: "baseCost", Cost: 1.6},
		{Type: cost.EntryNamespace, Name: "hack", Cost: 0.1},
	}}
	after := cost.Calculation{Cost: 1.6, Entries: []cost.Entry{{Type: cost.EntryMisc, Name: "baseCost", Cost: 1.6}}}

	diff := Compare(before, after)
	if len(diff.Changes) != 1 || diff.Changes[0].Kind != EntryRemoved || diff.Changes[0].Name != "hack" {
		t.Fatalf("expected a single removed hack entry, got %+v", diff.Changes)
	}
}

func TestCompare_CostChanged(t *testing.T) {
	before := cost.Calculation{Cost: 1.7, Entries: []cost.Entry{
		{Type: cost.EntryNamespace, Name: "hack", Cost: 0.1},
	}}
	after := cost.Calculation{Cost: 1.8, Entries: []cost.Entry{
		{Type: cost.EntryNamespace, Name: "hack", Cost: 0.2},
	}}

	diff := Compare(before, after)
	if len(diff.Changes) != 1 {
		t.Fatalf("expected a single change, got %+v", diff.Changes)
	}
	c := diff.Changes[0]
	if c.Kind != EntryCostDelta || c.OldCost != 0.1 || c.NewCost != 0.2 {
		t.Errorf("unexpected change: %+v", c)
	}
}

func TestCompare_NoChanges(t *testing.T) {
	calc := cost.Calculation{Cost: 1.6, Entries: []cost.Entry{{Type: cost.EntryMisc, Name: "baseCost", Cost: 1.6}}}
	diff := Compare(calc, calc)
	if len(diff.Changes) != 0 {
		t.Errorf("expected no changes between identical calculations, got %+v", diff.Changes)
	}
	if diff.OldTotal != diff.NewTotal {
		t.Errorf("expected equal totals, got old=%v new=%v", diff.OldTotal, diff.NewTotal)
	}
}
