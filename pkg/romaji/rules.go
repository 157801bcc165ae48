package romaji

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ruleFile mirrors the on-disk YAML shape of a romaji mapping file:
//
//	extends: default
//	mapping:
//	  zya: null   # delete an inherited entry
//	  tso: つぉ    # add/override an entry
type ruleFile struct {
	Mapping map[string]*string `yaml:"mapping"`
	Extends *string            `yaml:"extends"`
}

// LoadMap reads the mapping file at path and, if it declares extends,
// recursively loads and merges over the parent mapping found alongside it
// (same directory, "<extends>.yml"). A mapping entry with explicit YAML
// null removes the corresponding parent key; any other value overrides it.
func LoadMap(path string) (map[string]string, error) {
	return loadMap(path, map[string]bool{})
}

func loadMap(path string, seen map[string]bool) (map[string]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve romaji map path %s: %w", path, err)
	}
	if seen[abs] {
		return nil, fmt.Errorf("romaji map %s: circular extends chain", path)
	}
	seen[abs] = true

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read romaji map %s: %w", path, err)
	}
	var file ruleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse romaji map %s: %w", path, err)
	}

	if file.Extends != nil {
		parentPath := filepath.Join(filepath.Dir(path), *file.Extends+".yml")
		parent, err := loadMap(parentPath, seen)
		if err != nil {
			return nil, err
		}
		for k, v := range file.Mapping {
			if v == nil {
				delete(parent, k)
			} else {
				parent[k] = *v
			}
		}
		return parent, nil
	}

	out := make(map[string]string, len(file.Mapping))
	for k, v := range file.Mapping {
		if v != nil {
			out[k] = *v
		}
	}
	return out, nil
}
