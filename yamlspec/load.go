package yamlspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and decodes a family specification file at path.
//
// Attribute, operation, and enum-entry ordering is exactly the YAML
// list order - gopkg.in/yaml.v3 decodes sequences into slices without
// reordering, so the resolver never has to re-derive order from a map.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes raw YAML bytes into a Doc.
func Parse(data []byte) (*Doc, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc.KernelPolicy == "" {
		doc.KernelPolicy = "split"
	}
	if doc.Operations.EnumModel == "" {
		doc.Operations.EnumModel = "unified"
	}
	return &doc, nil
}
