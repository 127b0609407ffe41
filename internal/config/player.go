// Package config loads the CLI-only YAML document that stands in for
// a host's opaque player-state object, so the analyzer can be exercised
// from the command line against realistic fixtures. The cost table is
// loaded separately, by cost.LoadTableYAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlayerState is the CLI's concrete stand-in for the opaque player
// object the library accepts as `any`. Its only contract obligation is
// the SourceFileCount method cost.LoadTableYAML's playerFn registry
// looks for.
type PlayerState struct {
	SourceFiles int `yaml:"sourceFileCount"`
}

// SourceFileCount satisfies the player-dependent cost-entry contract.
func (p PlayerState) SourceFileCount() int { return p.SourceFiles }

// LoadPlayerYAML reads a player-state fixture from path. A missing
// path is not an error: the zero-value PlayerState is returned so
// --player can be omitted for scripts with no player-dependent calls.
func LoadPlayerYAML(path string) (PlayerState, error) {
	if path == "" {
		return PlayerState{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return PlayerState{}, fmt.Errorf("reading player file %q: %w", path, err)
	}

	var p PlayerState
	if err := yaml.Unmarshal(content, &p); err != nil {
		return PlayerState{}, fmt.Errorf("parsing player file %q: %w", path, err)
	}
	return p, nil
}
