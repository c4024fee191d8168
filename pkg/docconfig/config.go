// Package docconfig defines the root configuration for docengine tools:
// which schema to compile documents against, how Markdown import treats
// soft breaks and code-block language detection, whether compiled
// schemas are cached to disk, and CLI-level output defaults. It plays
// the same role pkg/config plays for a lint runner, adapted from a
// rule-catalogue configuration to a schema/import/cache configuration.
package docconfig

// OutputFormat selects how a document is rendered to the terminal or a
// file.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTree OutputFormat = "tree"
	FormatText OutputFormat = "text"
)

// SoftBreakMode controls how a Markdown soft line break becomes inline
// content.
type SoftBreakMode string

const (
	// SoftBreakSpace renders a soft break as a single space, folding the
	// two source lines into one paragraph of text (CommonMark's default
	// rendering behavior).
	SoftBreakSpace SoftBreakMode = "space"
	// SoftBreakHard renders a soft break as an explicit hardBreak node.
	SoftBreakHard SoftBreakMode = "hardbreak"
)

// SchemaConfig selects the content-model schema documents are built
// against.
type SchemaConfig struct {
	// Source is "builtin" to use pkg/mdimport.Schema, or a filesystem
	// path to a YAML or TOML schema document loaded via
	// pkg/model/specload.
	Source string `mapstructure:"source" yaml:"source"`
}

// ImportConfig controls Markdown-to-document conversion.
type ImportConfig struct {
	SoftBreak SoftBreakMode `mapstructure:"soft_break" yaml:"soft_break"`

	// DetectLanguage runs language detection against fenced code blocks
	// that carry no info-string language.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`
}

// CacheConfig controls the on-disk compiled-schema cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"` // empty uses the OS cache directory
}

// Config is the root configuration structure for docengine.
type Config struct {
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema"`
	Import ImportConfig `mapstructure:"import" yaml:"import"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`

	// CLI-level options, not persisted to config files.

	Format OutputFormat `mapstructure:"-" yaml:"-" toml:"-"`
	Jobs   int          `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Schema: SchemaConfig{Source: "builtin"},
		Import: ImportConfig{
			SoftBreak:      SoftBreakSpace,
			DetectLanguage: true,
		},
		Cache:  CacheConfig{Enabled: true},
		Format: FormatTree,
		Jobs:   0, // 0 means use runtime.NumCPU()
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
