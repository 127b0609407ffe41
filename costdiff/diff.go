// Package costdiff computes a structural diff between two
// cost.Calculation results: which charged entries were added, removed,
// or changed cost between an old and a new script revision.
package costdiff

import "ramcost/cost"

// ChangeKind classifies one diffed entry.
type ChangeKind string

const (
	EntryAdded     ChangeKind = "added"
	EntryRemoved   ChangeKind = "removed"
	EntryCostDelta ChangeKind = "cost_changed"
)

// Change is one (type, name)-keyed difference between two calculations.
type Change struct {
	Kind    ChangeKind
	Type    cost.EntryType
	Name    string
	OldCost float64
	NewCost float64
}

// Diff is the full comparison result.
type Diff struct {
	Changes  []Change
	OldTotal float64
	NewTotal float64
}

type key struct {
	Type cost.EntryType
	Name string
}

// Compare diffs before and after, keyed by (type, name) — matching the
// cost reducer's own entry identity (spec §4.4's "(name, namespace)"
// dedup key maps onto an entry's (type, name) pair post-reduction).
func Compare(before, after cost.Calculation) Diff {
	beforeByKey := make(map[key]cost.Entry, len(before.Entries))
	for _, e := range before.Entries {
		beforeByKey[key{e.Type, e.Name}] = e
	}
	afterByKey := make(map[key]cost.Entry, len(after.Entries))
	for _, e := range after.Entries {
		afterByKey[key{e.Type, e.Name}] = e
	}

	var diff Diff
	diff.OldTotal = before.Cost
	diff.NewTotal = after.Cost

	for k, beforeEntry := range beforeByKey {
		afterEntry, exists := afterByKey[k]
		if !exists {
			diff.Changes = append(diff.Changes, Change{
				Kind: EntryRemoved, Type: k.Type, Name: k.Name, OldCost: beforeEntry.Cost,
			})
			continue
		}
		if afterEntry.Cost != beforeEntry.Cost {
			diff.Changes = append(diff.Changes, Change{
				Kind: EntryCostDelta, Type: k.Type, Name: k.Name,
				OldCost: beforeEntry.Cost, NewCost: afterEntry.Cost,
			})
		}
	}

	for k, afterEntry := range afterByKey {
		if _, exists := beforeByKey[k]; !exists {
			diff.Changes = append(diff.Changes, Change{
				Kind: EntryAdded, Type: k.Type, Name: k.Name, NewCost: afterEntry.Cost,
			})
		}
	}

	return diff
}
