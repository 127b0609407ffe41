// Package cost implements the cost reducer (spec §4.4): folding a
// deduplicated unresolved-call set against a host-supplied cost table,
// with special-namespace fixed costs and player-dependent entries.
package cost

// EntryType classifies one line of a RamCalculation.
type EntryType string

const (
	EntryNamespace EntryType = "ns"
	EntryDOM       EntryType = "dom"
	EntryFunction  EntryType = "fn"
	EntryMisc      EntryType = "misc"
)

// Entry is one charged line item.
type Entry struct {
	Type EntryType
	Name string
	Cost float64
}

// Calculation is the reducer's output: total cost plus the entries that
// sum to it, in the order they were charged.
type Calculation struct {
	Cost    float64
	Entries []Entry
}

// PlayerFunc computes a cost from an opaque, host-supplied player-state
// value. Invoked at most once per entry, at the moment the entry is
// charged, never cached across invocations.
type PlayerFunc func(player any) float64

// Value is a cost-table leaf: either a constant or a function of the
// player state. Exactly one of the two is meaningful at a time.
type Value struct {
	constant float64
	fn       PlayerFunc
}

// Const builds a fixed-cost Value.
func Const(cost float64) Value { return Value{constant: cost} }

// Func builds a player-dependent Value.
func Func(fn PlayerFunc) Value { return Value{fn: fn} }

// Resolve returns the actual numeric cost, invoking the player function
// if this Value is player-dependent.
func (v Value) Resolve(player any) float64 {
	if v.fn != nil {
		return v.fn(player)
	}
	return v.constant
}

// Table is the two-level cost-table contract from spec §6: bare
// identifiers map directly to a Value; sub-API identifiers (e.g.
// "hacknet", "sleeve", "stanek") map to a nested Value map. Special
// holds the four fixed full-namespace entries (spec §4.4 step 1),
// keyed by their full dotted namespace string.
type Table struct {
	BaseCost float64
	Entries  map[string]Value
	SubAPIs  map[string]map[string]Value
	Special  map[string]Entry
}

// NewTable returns an empty, ready-to-populate Table with baseCost 0.
func NewTable() *Table {
	return &Table{
		Entries: make(map[string]Value),
		SubAPIs: make(map[string]map[string]Value),
		Special: make(map[string]Entry),
	}
}

// lookup implements spec §4.4 step 2: split namespace on ".", use the
// last segment as the sub-API key when there's more than one segment,
// otherwise look the bare name up directly. Absent entries resolve to
// the zero Value (cost 0), matching the documented false-negative
// behavior for namespace-less calls to sub-API-only names.
func (t *Table) lookup(namespace, name string) Value {
	segments := splitDot(namespace)
	if len(segments) > 1 {
		sub := t.SubAPIs[segments[len(segments)-1]]
		return sub[name]
	}
	return t.Entries[name]
}

func splitDot(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
