package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CRUMBLER_TEST_ROOT", dir)
	path := filepath.Join(dir, "crumbler.yaml")
	writeFile(t, path, `source_root: ${CRUMBLER_TEST_ROOT}
output_directory: public
stylesheets:
  - a.css
  - b.css
scripts:
  - app.js
use_local_paths: true
web_path_root: /docs/
default_title: Untitled
copy_assets: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.SourceRoot)
	assert.Equal(t, filepath.Join(dir, "public"), cfg.OutputPath())
	assert.Equal(t, []string{"a.css", "b.css"}, cfg.Stylesheets)
	assert.Equal(t, []string{"app.js"}, cfg.Scripts)
	assert.Equal(t, ModeRelativeLocal, cfg.Mode())
	assert.Equal(t, "/docs/", cfg.WebPathRoot)
	assert.Equal(t, "Untitled", cfg.Title())
	assert.False(t, cfg.ShouldCopyAssets())
	assert.True(t, cfg.ShouldRewriteAssets())
	assert.Equal(t, DefaultChainCacheSize, cfg.ChainCacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "stylesheets: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.HasSeverity(err, errors.SeverityFatal))
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.SourceRoot)
	assert.Equal(t, "build", cfg.OutputDirectory)
	assert.Equal(t, ModeWebRooted, cfg.Mode())
	assert.Equal(t, "", cfg.Title())
	assert.True(t, cfg.ShouldCopyAssets())
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want AddressingMode
	}{
		{"local flag", Config{UseLocalPaths: true}, ModeRelativeLocal},
		{"web by default", Config{}, ModeWebRooted},
		{"explicit overrides flag", Config{UseLocalPaths: true, AddressingMode: "web"}, ModeWebRooted},
		{"explicit alias", Config{AddressingMode: " Relative_Local "}, ModeRelativeLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Mode())
		})
	}
}

func TestParseAddressingMode(t *testing.T) {
	m, err := ParseAddressingMode("LOCAL")
	require.NoError(t, err)
	assert.Equal(t, ModeRelativeLocal, m)

	_, err = ParseAddressingMode("sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options")
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.md")
	writeFile(t, file, "# x")

	tests := []struct {
		name     string
		cfg      *Config
		category errors.ErrorCategory
	}{
		{"missing source", &Config{SourceRoot: filepath.Join(root, "missing"), OutputDirectory: "build"}, errors.CategoryConfig},
		{"source is file", &Config{SourceRoot: file, OutputDirectory: "build"}, errors.CategoryConfig},
		{"bad mode", &Config{SourceRoot: root, OutputDirectory: "build", AddressingMode: "sideways"}, errors.CategoryValidation},
		{"output equals source", &Config{SourceRoot: root, OutputDirectory: root}, errors.CategoryValidation},
		{"both page templates", &Config{SourceRoot: root, OutputDirectory: "build", PageTemplate: "x", PageTemplateFile: "y"}, errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, tt.category), "got %v", err)
		})
	}

	ok := &Config{SourceRoot: root, OutputDirectory: "build"}
	assert.NoError(t, ok.Validate())
}

func TestResolveTemplates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tpl", "page.html"), "<title>{title}</title>{body}")

	cfg := &Config{SourceRoot: root, PageTemplateFile: "tpl/page.html"}
	require.NoError(t, cfg.ResolveTemplates())

	assert.Equal(t, "<title>{title}</title>{body}", cfg.PageTemplate)
	assert.Equal(t, DefaultBreadcrumbTemplate, cfg.BreadcrumbTemplate)
	assert.Equal(t, []string{filepath.Join(root, "tpl", "page.html")}, cfg.TemplatePaths())

	missing := &Config{SourceRoot: root, BreadcrumbTemplateFile: "nope.html"}
	err := missing.ResolveTemplates()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "crumbler.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.OutputDirectory)
	assert.Equal(t, []string{"/static/site.css"}, cfg.Stylesheets)
}

func TestNormalizeLogging(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("WARNING"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("chatty"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat(" json "))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}
