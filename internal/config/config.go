package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
)

// Config is the immutable run configuration threaded through every component.
type Config struct {
	// SourceRoot is the directory tree that gets converted.
	SourceRoot      string `yaml:"source_root"`
	// OutputDirectory receives the mirrored tree. Relative paths resolve against SourceRoot.
	OutputDirectory string `yaml:"output_directory"`

	BreadcrumbTemplate     string `yaml:"breadcrumb_template,omitempty"`
	BreadcrumbTemplateFile string `yaml:"breadcrumb_template_file,omitempty"`
	PageTemplate           string `yaml:"page_template,omitempty"`
	PageTemplateFile       string `yaml:"page_template_file,omitempty"`

	Stylesheets []string `yaml:"stylesheets,omitempty"`
	Scripts     []string `yaml:"scripts,omitempty"`

	UseLocalPaths  bool   `yaml:"use_local_paths"`
	AddressingMode string `yaml:"addressing_mode,omitempty"` // overrides use_local_paths when set
	WebPathRoot    string `yaml:"web_path_root"`

	// DefaultTitle is used when a document has no top-level heading. Nil means empty title.
	DefaultTitle *string `yaml:"default_title,omitempty"`

	CopyAssets     *bool  `yaml:"copy_assets,omitempty"`
	RewriteAssets  *bool  `yaml:"rewrite_assets,omitempty"`
	HighlightStyle string `yaml:"highlight_style,omitempty"`
	ChainCacheSize int    `yaml:"chain_cache_size,omitempty"`

	ReportFile  string `yaml:"report_file,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// Load reads a YAML configuration file, expanding environment variables
// before unmarshalling, and applies defaults.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return cfg, nil
}

// Parse unmarshals YAML configuration content and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a configuration with every default applied, as used when no
// configuration file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Mode returns the addressing mode for this run.
func (c *Config) Mode() AddressingMode {
	if c.AddressingMode != "" {
		return NormalizeAddressingMode(c.AddressingMode)
	}
	if c.UseLocalPaths {
		return ModeRelativeLocal
	}
	return ModeWebRooted
}

// OutputPath returns the absolute-or-clean output directory, resolving
// relative values against the source root.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.OutputDirectory) {
		return filepath.Clean(c.OutputDirectory)
	}
	return filepath.Join(c.SourceRoot, c.OutputDirectory)
}

// Title returns the configured default title or "".
func (c *Config) Title() string {
	if c.DefaultTitle == nil {
		return ""
	}
	return *c.DefaultTitle
}

// ShouldCopyAssets reports whether non-document files are copied to the output tree.
func (c *Config) ShouldCopyAssets() bool {
	return c.CopyAssets == nil || *c.CopyAssets
}

// ShouldRewriteAssets reports whether references to non-document files are rewritten.
func (c *Config) ShouldRewriteAssets() bool {
	return c.RewriteAssets == nil || *c.RewriteAssets
}

// TemplatePaths returns the absolute paths of the configured template files.
// They are excluded from the tree scan so they are never copied or converted.
func (c *Config) TemplatePaths() []string {
	var out []string
	for _, p := range []string{c.PageTemplateFile, c.BreadcrumbTemplateFile} {
		if p == "" {
			continue
		}
		out = append(out, c.resolveSourcePath(p))
	}
	return out
}

func (c *Config) resolveSourcePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.SourceRoot, p)
}
