// Package link implements the link resolver stage of the RAM-cost
// analyzer: starting from the entry-point module, it transitively loads
// every imported module — from the supplied in-memory file set, or by
// fetching a remote URL — and returns the full set of parsed modules.
package link

import (
	"context"
	"fmt"
)

// ScriptFile is an auxiliary source file supplied by the host: any
// record with at least a filename and its code.
type ScriptFile struct {
	Filename string
	Code     string
}

// SpecifierMatcher decides whether an import specifier refers to a
// given supplied filename. The exact rule (extension-insensitive by
// default) is a host-tunable collaborator — see scriptmatch.Matcher.
type SpecifierMatcher interface {
	Match(specifier, filename string) bool
}

// URLFetcher performs the one blocking I/O suspension point allowed by
// the resolver: fetching a remote module's bytes.
type URLFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImportError reports that a non-URL import specifier matched no file
// in the supplied set.
type ImportError struct {
	Path string
}

func (e *ImportError) Error() string { return fmt.Sprintf("import not found: %q", e.Path) }

// Code is the fixed negative cost used by the legacy error-as-cost
// calling convention.
func (e *ImportError) Code() int { return -2 }

// URLImportError reports a failure fetching or parsing a remote module.
type URLImportError struct {
	URL string
	Err error
}

func (e *URLImportError) Error() string {
	return fmt.Sprintf("failed to import %q: %v", e.URL, e.Err)
}

func (e *URLImportError) Unwrap() error { return e.Err }

// Code is the fixed negative cost used by the legacy error-as-cost
// calling convention.
func (e *URLImportError) Code() int { return -3 }
