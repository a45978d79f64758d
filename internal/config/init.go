package config

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
)

const exampleConfig = `# crumbler configuration
source_root: ${PWD}
output_directory: build

# Inline templates or template files (relative to source_root).
# page_template_file: templates/page.html
# breadcrumb_template_file: templates/crumb.html

stylesheets:
  - /static/site.css
scripts: []

# true: relative links ("../guide.html"); false: web-rooted links ("/docs/guide.html")
use_local_paths: false
web_path_root: /

# default_title: Documentation
copy_assets: true
rewrite_assets: true
# highlight_style: monokai

# report_file: build-report.json
# metrics_file: crumbler.prom

logging:
  level: info
  format: text
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").Build()
		}
	}
	// #nosec G306 -- configuration is not secret
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
