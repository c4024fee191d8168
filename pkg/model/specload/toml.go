package specload

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/docengine/pkg/docstore"
	"github.com/yaklabco/docengine/pkg/model"
)

// LoadTOML compiles a schema from a TOML-encoded Document.
func LoadTOML(data []byte) (*model.Schema, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("specload: parse toml: %w", err)
	}
	return compile(&doc)
}

// LoadTOMLCached compiles a schema from a TOML-encoded Document, reusing
// cache's stored content-match DFAs when data has been compiled before.
// A nil cache behaves exactly like LoadTOML.
func LoadTOMLCached(data []byte, cache *docstore.Cache) (*model.Schema, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("specload: parse toml: %w", err)
	}
	return compileCached(&doc, data, cache)
}

// LoadTOMLFile reads and compiles a schema from a TOML file on disk.
func LoadTOMLFile(path string) (*model.Schema, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("specload.LoadTOMLFile: parse %s: %w", path, err)
	}
	return compile(&doc)
}

// ToTOML serializes doc back to TOML.
func ToTOML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("specload: encode toml: %w", err)
	}
	return buf.Bytes(), nil
}
