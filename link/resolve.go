package link

import (
	"context"
	"strings"

	"ramcost/parse"
)

// ParseAll resolves the transitive import closure of an entry-point
// script (spec §4.2). The entry point is always the first element of
// the returned slice, labeled with filePath "". Modules are resolved
// in worklist order — a breadth-first queue, not a stack.
func ParseAll(ctx context.Context, p *parse.Parser, entryCode string, otherScripts []ScriptFile, matcher SpecifierMatcher, fetcher URLFetcher) ([]*parse.ParsedModule, error) {
	entry, err := p.ParseScript([]byte(entryCode), "")
	if err != nil {
		return nil, err
	}

	modules := []*parse.ParsedModule{entry}
	seen := map[string]bool{"": true}

	var worklist []string
	pushed := map[string]bool{}
	for _, imp := range entry.ImportedModules {
		if !pushed[imp.FilePath] {
			pushed[imp.FilePath] = true
			worklist = append(worklist, imp.FilePath)
		}
	}

	for len(worklist) > 0 {
		raw := worklist[0]
		worklist = worklist[1:]

		normalized := normalizeSpecifier(raw)
		if seen[normalized] {
			continue
		}

		var src []byte
		if isURL(raw) {
			synthesized, fetchErr := fetchURLModule(ctx, p, raw, fetcher)
			if fetchErr != nil {
				return nil, fetchErr
			}
			src = synthesized
		} else {
			file := findScriptFile(otherScripts, raw, matcher)
			if file == nil {
				return nil, &ImportError{Path: raw}
			}
			src = []byte(file.Code)
		}

		mod, parseErr := p.ParseScript(src, normalized)
		if parseErr != nil {
			return nil, parseErr
		}

		seen[normalized] = true
		modules = append(modules, mod)
		for _, imp := range mod.ImportedModules {
			worklist = append(worklist, imp.FilePath)
		}
	}

	return modules, nil
}

func normalizeSpecifier(raw string) string {
	if isURL(raw) {
		return raw
	}
	return strings.TrimPrefix(raw, "./")
}

func isURL(specifier string) bool {
	return strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://")
}

func findScriptFile(scripts []ScriptFile, specifier string, matcher SpecifierMatcher) *ScriptFile {
	normalized := strings.TrimPrefix(specifier, "./")
	for i := range scripts {
		if matcher.Match(normalized, scripts[i].Filename) {
			return &scripts[i]
		}
	}
	return nil
}

func fetchURLModule(ctx context.Context, p *parse.Parser, url string, fetcher URLFetcher) ([]byte, error) {
	raw, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &URLImportError{URL: url, Err: err}
	}

	sources, err := p.DeclarationSources(raw)
	if err != nil {
		return nil, &URLImportError{URL: url, Err: err}
	}

	var buf strings.Builder
	for _, src := range sources {
		buf.WriteString(src)
		buf.WriteString(";\n")
	}
	return []byte(buf.String()), nil
}
