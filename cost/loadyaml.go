package cost

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// playerFuncRegistry resolves the small set of named player-dependent
// functions a YAML cost table can reference, since YAML has no way to
// encode a Go closure directly.
var playerFuncRegistry = map[string]PlayerFunc{
	"sourceFileCount": func(player any) float64 {
		counter, ok := player.(interface{ SourceFileCount() int })
		if !ok {
			return 0
		}
		return float64(counter.SourceFileCount())
	},
}

type yamlTable struct {
	BaseCost float64                          `yaml:"baseCost"`
	Entries  map[string]yaml.Node             `yaml:"entries"`
	SubAPIs  map[string]map[string]yaml.Node `yaml:"subApis"`
	Special  map[string]yamlSpecial           `yaml:"special"`
}

type yamlSpecial struct {
	Type EntryType `yaml:"type"`
	Cost float64   `yaml:"cost"`
}

// LoadTableYAML parses a cost table document of the shape:
//
//	baseCost: 1.6
//	entries:
//	  hack: 0.1
//	  grow: 0.15
//	  singularity:
//	    playerFn: sourceFileCount
//	    scale: 1000
//	subApis:
//	  hacknet:
//	    purchaseNode: 0
//	special:
//	  ns.hacknet:
//	    type: ns
//	    cost: 1.0
//
// A numeric entry is a constant cost; a mapping entry with a playerFn
// key is resolved against playerFuncRegistry and scaled by scale
// (default 1) at invocation time.
func LoadTableYAML(content []byte) (*Table, error) {
	var raw yamlTable
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parsing cost table YAML: %w", err)
	}

	table := NewTable()
	table.BaseCost = raw.BaseCost

	for name, node := range raw.Entries {
		value, err := decodeValue(name, node)
		if err != nil {
			return nil, err
		}
		table.Entries[name] = value
	}

	for subAPI, entries := range raw.SubAPIs {
		decoded := make(map[string]Value, len(entries))
		for name, node := range entries {
			value, err := decodeValue(subAPI+"."+name, node)
			if err != nil {
				return nil, err
			}
			decoded[name] = value
		}
		table.SubAPIs[subAPI] = decoded
	}

	for namespace, special := range raw.Special {
		table.Special[namespace] = Entry{Type: special.Type, Name: namespace, Cost: special.Cost}
	}

	return table, nil
}

func decodeValue(path string, node yaml.Node) (Value, error) {
	if node.Kind == yaml.ScalarNode {
		var constant float64
		if err := node.Decode(&constant); err != nil {
			return Value{}, fmt.Errorf("cost table entry %q: %w", path, err)
		}
		return Const(constant), nil
	}

	var fnSpec struct {
		PlayerFn string  `yaml:"playerFn"`
		Scale    float64 `yaml:"scale"`
	}
	if err := node.Decode(&fnSpec); err != nil {
		return Value{}, fmt.Errorf("cost table entry %q: %w", path, err)
	}
	base, ok := playerFuncRegistry[fnSpec.PlayerFn]
	if !ok {
		return Value{}, fmt.Errorf("cost table entry %q: unknown playerFn %q", path, fnSpec.PlayerFn)
	}
	scale := fnSpec.Scale
	if scale == 0 {
		scale = 1
	}
	return Func(func(player any) float64 { return base(player) * scale }), nil
}
