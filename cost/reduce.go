package cost

import "ramcost/parse"

// SpecialNamespaces are the four fixed full-name strings that are
// always charged merely for being referenced (spec §4.4 step 1). A
// Table's Special map is keyed by these strings.
var SpecialNamespaces = []string{"ns.hacknet", "document", "window", "ns.corporation"}

// Reduce implements the cost reducer (spec §4.4): deduplicate the
// unresolved call set, fold each remaining call against table, prepend
// the baseCost entry, and sum.
func Reduce(unresolved []parse.DefinedFunction, table *Table, player any) Calculation {
	calc := Calculation{
		Entries: []Entry{{Type: EntryMisc, Name: "baseCost", Cost: table.BaseCost}},
	}
	calc.Cost += table.BaseCost

	seen := make(map[parse.DefinedFunction]bool, len(unresolved))
	for _, fn := range unresolved {
		if seen[fn] {
			continue
		}
		seen[fn] = true

		if special, ok := table.Special[fn.Namespace]; ok {
			calc.Entries = append(calc.Entries, special)
			calc.Cost += special.Cost
			continue
		}

		value := table.lookup(fn.Namespace, fn.Name)
		entry := Entry{Type: EntryNamespace, Name: fn.Name, Cost: value.Resolve(player)}
		calc.Entries = append(calc.Entries, entry)
		calc.Cost += entry.Cost
	}

	return calc
}
