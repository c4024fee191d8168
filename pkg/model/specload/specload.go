// Package specload loads a model.SchemaSpec from a hand-authored YAML or
// TOML document, so a schema can be declared as data instead of Go code.
package specload

import (
	"fmt"
	"os"

	"github.com/yaklabco/docengine/pkg/docstore"
	"github.com/yaklabco/docengine/pkg/model"
)

// Document is the wire format for a schema declaration: an ordered list
// of node and mark entries plus the name of the top-level node type.
type Document struct {
	TopNode string      `yaml:"topNode,omitempty" toml:"topNode,omitempty"`
	Nodes   []NodeEntry `yaml:"nodes" toml:"nodes"`
	Marks   []MarkEntry `yaml:"marks,omitempty" toml:"marks,omitempty"`
}

// NodeEntry is one node type declaration.
type NodeEntry struct {
	Name               string               `yaml:"name" toml:"name"`
	Content            string               `yaml:"content,omitempty" toml:"content,omitempty"`
	Marks              *string              `yaml:"marks,omitempty" toml:"marks,omitempty"`
	Group              string               `yaml:"group,omitempty" toml:"group,omitempty"`
	Inline             bool                 `yaml:"inline,omitempty" toml:"inline,omitempty"`
	Atom               bool                 `yaml:"atom,omitempty" toml:"atom,omitempty"`
	Isolating          bool                 `yaml:"isolating,omitempty" toml:"isolating,omitempty"`
	DefiningAsContext  bool                 `yaml:"definingAsContext,omitempty" toml:"definingAsContext,omitempty"`
	DefiningForContent bool                 `yaml:"definingForContent,omitempty" toml:"definingForContent,omitempty"`
	Whitespace         string               `yaml:"whitespace,omitempty" toml:"whitespace,omitempty"`
	Attrs              map[string]AttrEntry `yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// MarkEntry is one mark type declaration.
type MarkEntry struct {
	Name      string               `yaml:"name" toml:"name"`
	Group     string               `yaml:"group,omitempty" toml:"group,omitempty"`
	Inclusive *bool                `yaml:"inclusive,omitempty" toml:"inclusive,omitempty"`
	Excludes  *string              `yaml:"excludes,omitempty" toml:"excludes,omitempty"`
	Attrs     map[string]AttrEntry `yaml:"attrs,omitempty" toml:"attrs,omitempty"`
}

// AttrEntry declares one attribute. An attribute with Required true must
// be supplied explicitly when a node or mark of that type is created;
// otherwise Default is used.
type AttrEntry struct {
	Default  any  `yaml:"default,omitempty" toml:"default,omitempty"`
	Required bool `yaml:"required,omitempty" toml:"required,omitempty"`
}

// ToSchemaSpec converts the wire document into a model.SchemaSpec ready
// for model.NewSchema.
func (d *Document) ToSchemaSpec() (model.SchemaSpec, error) {
	spec := model.SchemaSpec{TopNode: d.TopNode}
	for _, n := range d.Nodes {
		spec.Nodes = append(spec.Nodes, model.NamedNodeSpec{
			Name: n.Name,
			Spec: model.NodeSpec{
				Content:            n.Content,
				Marks:              n.Marks,
				Group:              n.Group,
				Inline:             n.Inline,
				Atom:               n.Atom,
				Attrs:              toAttributeSpecs(n.Attrs),
				Isolating:          n.Isolating,
				DefiningAsContext:  n.DefiningAsContext,
				DefiningForContent: n.DefiningForContent,
				Whitespace:         n.Whitespace,
			},
		})
	}
	for _, m := range d.Marks {
		spec.Marks = append(spec.Marks, model.NamedMarkSpec{
			Name: m.Name,
			Spec: model.MarkSpec{
				Attrs:     toAttributeSpecs(m.Attrs),
				Inclusive: m.Inclusive,
				Group:     m.Group,
				Excludes:  m.Excludes,
			},
		})
	}
	return spec, nil
}

func toAttributeSpecs(m map[string]AttrEntry) map[string]model.AttributeSpec {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]model.AttributeSpec, len(m))
	for name, entry := range m {
		out[name] = model.AttributeSpec{
			Default:    entry.Default,
			HasDefault: !entry.Required,
		}
	}
	return out
}

func compile(doc *Document) (*model.Schema, error) {
	spec, err := doc.ToSchemaSpec()
	if err != nil {
		return nil, err
	}
	return model.NewSchema(spec)
}

func compileCached(doc *Document, source []byte, cache *docstore.Cache) (*model.Schema, error) {
	if cache == nil {
		return compile(doc)
	}
	spec, err := doc.ToSchemaSpec()
	if err != nil {
		return nil, err
	}
	key := docstore.DigestOf(source)
	if payload, ok, err := cache.Get(key); err == nil && ok {
		spec.Precompiled = payload.ContentMatches
	}
	schema, err := model.NewSchema(spec)
	if err != nil {
		return nil, err
	}
	_ = cache.Put(key, schema)
	return schema, nil
}

func readFile(op, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
	}
	return data, nil
}
