package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a boss registry seed.
//
//	bosses:
//	  - Ferumbras
//	  - Arthom the Hunter
type File struct {
	Bosses []string `yaml:"bosses"`
}

// Load reads a registry file and returns its boss names.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return Parse(data)
}

// Parse decodes registry YAML. Names are trimmed; blanks and exact duplicates are
// dropped while file order is kept.
func Parse(data []byte) ([]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
	}

	seen := make(map[string]bool, len(f.Bosses))
	names := make([]string, 0, len(f.Bosses))
	for _, b := range f.Bosses {
		name := strings.TrimSpace(b)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
