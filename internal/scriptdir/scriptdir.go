// Package scriptdir loads a directory of auxiliary script files into
// the link.ScriptFile records the resolver matches import specifiers
// against, for hosts (namely the CLI) that keep a script's dependencies
// as plain files on disk rather than supplying them in memory.
package scriptdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ramcost/link"
)

// Load walks dir and returns one link.ScriptFile per .js/.ts file found,
// skipping hidden entries and common non-source directories. Filenames
// are recorded relative to dir, matching how a script's own import
// specifiers are written.
func Load(dir string) ([]link.ScriptFile, error) {
	var scripts []link.ScriptFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "dist") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".js" && ext != ".ts" {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		scripts = append(scripts, link.ScriptFile{Filename: relPath, Code: string(content)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking script directory %q: %w", dir, err)
	}

	return scripts, nil
}
