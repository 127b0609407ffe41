// Package ramcost is the public API of the static RAM-cost analyzer:
// parse one entry-point script plus its transitively imported modules,
// classify every reached call as locally defined or a platform API, and
// fold the platform-API calls against a cost table.
package ramcost

import (
	"context"

	"ramcost/cost"
	"ramcost/link"
	"ramcost/parse"
	"ramcost/reach"
	"ramcost/scriptmatch"
)

// RamCalculation is the reducer's output: total cost plus the entries
// that sum to it.
type RamCalculation = cost.Calculation

// ParseScript parses one script's AST into its ParsedModule: imports
// plus the function/class graph declared at its top level.
func ParseScript(code []byte, filePath string) (*parse.ParsedModule, error) {
	return parse.NewParser().ParseScript(code, filePath)
}

// ParseAll resolves the transitive import closure of an entry-point
// script against otherScripts, fetching any URL import over HTTP. May
// suspend exactly once per remote import.
func ParseAll(ctx context.Context, code string, otherScripts []link.ScriptFile) ([]*parse.ParsedModule, error) {
	return link.ParseAll(ctx, parse.NewParser(), code, otherScripts, scriptmatch.New(), link.NewHTTPFetcher())
}

// FindAllCalledFunctions runs the reachability traversal over modules
// starting from entryPoint (reach.DefaultEntry if nil), returning the
// disjoint resolved and unresolved DefinedFunction sets.
func FindAllCalledFunctions(modules []*parse.ParsedModule, entryPoint *parse.DefinedFunction) (resolved, unresolved []parse.DefinedFunction) {
	entry := reach.DefaultEntry
	if entryPoint != nil {
		entry = *entryPoint
	}
	result := reach.Find(modules, entry)
	return result.Resolved, result.Unresolved
}

// CalculateRamUsage runs the full three-stage pipeline: parse, resolve
// imports, classify reachability, and reduce the unresolved set against
// table. player is an opaque value passed through to player-dependent
// cost-table entries.
func CalculateRamUsage(ctx context.Context, player any, code string, otherScripts []link.ScriptFile, table *cost.Table) (RamCalculation, error) {
	modules, err := ParseAll(ctx, code, otherScripts)
	if err != nil {
		return RamCalculation{}, err
	}

	result := reach.Find(modules, reach.DefaultEntry)
	return cost.Reduce(result.Unresolved, table, player), nil
}

// errCoder is implemented by parse.SyntaxError, link.ImportError, and
// link.URLImportError: each carries a fixed negative integer for the
// legacy error-as-cost calling convention.
type errCoder interface {
	Code() int
}

// CalculateRamUsageLegacy wraps CalculateRamUsage for hosts that want
// the original calling convention: on any error, the returned cost is
// the error's negative code and Entries is nil, instead of a separate
// error return (spec §7).
func CalculateRamUsageLegacy(ctx context.Context, player any, code string, otherScripts []link.ScriptFile, table *cost.Table) RamCalculation {
	calc, err := CalculateRamUsage(ctx, player, code, otherScripts, table)
	if err == nil {
		return calc
	}

	errCode := -1
	if coder, ok := err.(errCoder); ok {
		errCode = coder.Code()
	}
	return RamCalculation{Cost: float64(errCode), Entries: nil}
}
