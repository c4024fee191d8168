package specload

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/docengine/pkg/docstore"
	"github.com/yaklabco/docengine/pkg/model"
)

// LoadYAML compiles a schema from a YAML-encoded Document.
func LoadYAML(data []byte) (*model.Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specload: parse yaml: %w", err)
	}
	return compile(&doc)
}

// LoadYAMLCached compiles a schema from a YAML-encoded Document, reusing
// cache's stored content-match DFAs when data has been compiled before
// and storing them for next time otherwise. A nil cache behaves exactly
// like LoadYAML.
func LoadYAMLCached(data []byte, cache *docstore.Cache) (*model.Schema, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specload: parse yaml: %w", err)
	}
	return compileCached(&doc, data, cache)
}

// LoadYAMLFile reads and compiles a schema from a YAML file on disk.
func LoadYAMLFile(path string) (*model.Schema, error) {
	data, err := readFile("specload.LoadYAMLFile", path)
	if err != nil {
		return nil, err
	}
	return LoadYAML(data)
}

// ToYAML serializes doc back to YAML, for round-tripping a schema
// compiled elsewhere back into an editable file.
func ToYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("specload: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("specload: close yaml encoder: %w", err)
	}
	return buf.Bytes(), nil
}
