package config

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
)

// Validate checks the configuration before any conversion starts. Every
// returned error is a fatal config or validation error.
func (c *Config) Validate() error {
	info, err := os.Stat(c.SourceRoot)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid source path").
			Fatal().
			WithContext("source_root", c.SourceRoot).
			Build()
	}
	if !info.IsDir() {
		return errors.ConfigError("source path is not a directory").
			WithContext("source_root", c.SourceRoot).
			Build()
	}

	if c.AddressingMode != "" {
		if _, err := ParseAddressingMode(c.AddressingMode); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid addressing_mode").
				Fatal().
				Build()
		}
	}

	src, err := filepath.Abs(c.SourceRoot)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve source path").Fatal().Build()
	}
	out, err := filepath.Abs(c.OutputPath())
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "cannot resolve output directory").Fatal().Build()
	}
	if src == out {
		return errors.ValidationError("output directory must differ from the source root").
			WithContext("output_directory", c.OutputDirectory).
			Build()
	}

	if c.PageTemplate != "" && c.PageTemplateFile != "" {
		return errors.ValidationError("page_template and page_template_file are mutually exclusive").Build()
	}
	if c.BreadcrumbTemplate != "" && c.BreadcrumbTemplateFile != "" {
		return errors.ValidationError("breadcrumb_template and breadcrumb_template_file are mutually exclusive").Build()
	}
	return nil
}

// ResolveTemplates reads the configured template files (relative to the source
// root) into PageTemplate / BreadcrumbTemplate and fills in the built-in
// defaults for anything left unset. A missing or unreadable template file is
// a fatal configuration error.
func (c *Config) ResolveTemplates() error {
	if c.PageTemplateFile != "" {
		text, err := readTemplate(c.resolveSourcePath(c.PageTemplateFile))
		if err != nil {
			return err
		}
		c.PageTemplate = text
	}
	if c.BreadcrumbTemplateFile != "" {
		text, err := readTemplate(c.resolveSourcePath(c.BreadcrumbTemplateFile))
		if err != nil {
			return err
		}
		c.BreadcrumbTemplate = text
	}
	if c.PageTemplate == "" {
		c.PageTemplate = DefaultPageTemplate
	}
	if c.BreadcrumbTemplate == "" {
		c.BreadcrumbTemplate = DefaultBreadcrumbTemplate
	}
	return nil
}

func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "template file unreadable").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return string(data), nil
}
