// Package scriptmatch implements the host-delegated equivalence
// predicate between an import specifier and a supplied script's
// filename (spec §4.2, §9). The exact rule is deliberately kept behind
// this small collaborator so a host can tighten or loosen it without
// touching the link resolver.
package scriptmatch

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// candidateExtensions are tried, in order, when a specifier has no
// extension of its own — mirroring how the runtime resolves
// extension-less imports.
var candidateExtensions = []string{"", ".js", ".jsx", ".ts", ".tsx"}

// Matcher decides whether an import specifier refers to a given
// filename. The default rule is extension-insensitive and also accepts
// glob patterns in specifiers (e.g. a specifier of "./lib/*" matching
// every script under lib/), via doublestar.
type Matcher struct{}

// New returns the default specifier/filename matcher.
func New() *Matcher { return &Matcher{} }

// Match reports whether specifier (an import's normalized path) refers
// to filename (a script's name in the supplied file set).
func (m *Matcher) Match(specifier, filename string) bool {
	specifier = normalize(specifier)
	filename = normalize(filename)

	if specifier == filename {
		return true
	}

	if ok, _ := doublestar.Match(specifier, filename); ok {
		return true
	}

	specBase := trimKnownExtension(specifier)
	fileBase := trimKnownExtension(filename)
	if specBase == fileBase {
		return true
	}

	for _, ext := range candidateExtensions {
		if specBase+ext == filename {
			return true
		}
	}

	return false
}

func normalize(p string) string {
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

func trimKnownExtension(p string) string {
	for _, ext := range []string{".js", ".jsx", ".ts", ".tsx"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}
