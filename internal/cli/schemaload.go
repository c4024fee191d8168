package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/docengine/pkg/docconfig"
	"github.com/yaklabco/docengine/pkg/docstore"
	"github.com/yaklabco/docengine/pkg/mdimport"
	"github.com/yaklabco/docengine/pkg/model"
	"github.com/yaklabco/docengine/pkg/model/specload"
)

// openCache opens the compiled-schema disk cache described by cfg, or
// returns a nil cache when caching is disabled.
func openCache(cfg *docconfig.Config) (*docstore.Cache, error) {
	if cfg == nil || !cfg.Cache.Enabled {
		return nil, nil
	}
	return docstore.Open(cfg.Cache.Dir)
}

// loadSchema resolves the schema named by cfg.Schema.Source: the literal
// value "builtin" (or an empty source) selects the schema Markdown import
// targets, anything else is a path to a YAML or TOML schema document.
func loadSchema(cfg *docconfig.Config, cache *docstore.Cache) (*model.Schema, error) {
	source := "builtin"
	if cfg != nil && cfg.Schema.Source != "" {
		source = cfg.Schema.Source
	}
	if source == "builtin" {
		return mdimport.Schema, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", source, err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		return specload.LoadTOMLCached(data, cache)
	default:
		return specload.LoadYAMLCached(data, cache)
	}
}
