package commands

import (
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/crumbler/internal/build"
	"git.home.luguber.info/inful/crumbler/internal/config"
	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
	"git.home.luguber.info/inful/crumbler/internal/logfields"
	"git.home.luguber.info/inful/crumbler/internal/metrics"
)

// BuildCmd implements the 'build' command. Flags override configuration file values.
type BuildCmd struct {
	SourceFlags `embed:""`

	Breadcrumb string   `short:"b" name:"breadcrumb" help:"Breadcrumb template file, relative to the source root"`
	HTML       string   `name:"html" help:"Page template file, relative to the source root"`
	CSS        []string `short:"c" name:"css" sep:"none" help:"Stylesheet URI added to every page (repeatable)"`
	JS         []string `short:"j" name:"js" sep:"none" help:"Script URI added to every page (repeatable)"`
	Local      bool     `short:"l" name:"local" help:"Rewrite links relative to each page instead of web-rooted"`
	Title      string   `short:"t" name:"title" help:"Title for documents without a top-level heading"`
	Webpath    string   `short:"w" name:"webpath" help:"Path prefix for web-rooted links"`
	Report     string   `name:"report" help:"Write a JSON build report to this file"`
	Metrics    string   `name:"metrics" help:"Write Prometheus textfile metrics to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}
	b.apply(cfg)
	slog.SetDefault(NewLogger(g.errOut(), root.Verbose, cfg.Logging))
	return RunBuild(g.out(), cfg)
}

func (b *BuildCmd) apply(cfg *config.Config) {
	b.SourceFlags.apply(cfg)
	if b.Breadcrumb != "" {
		cfg.BreadcrumbTemplate = ""
		cfg.BreadcrumbTemplateFile = b.Breadcrumb
	}
	if b.HTML != "" {
		cfg.PageTemplate = ""
		cfg.PageTemplateFile = b.HTML
	}
	if len(b.CSS) > 0 {
		cfg.Stylesheets = b.CSS
	}
	if len(b.JS) > 0 {
		cfg.Scripts = b.JS
	}
	if b.Local {
		cfg.UseLocalPaths = true
		cfg.AddressingMode = string(config.ModeRelativeLocal)
	}
	if b.Title != "" {
		title := b.Title
		cfg.DefaultTitle = &title
	}
	if b.Webpath != "" {
		cfg.WebPathRoot = b.Webpath
	}
	if b.Report != "" {
		cfg.ReportFile = b.Report
	}
	if b.Metrics != "" {
		cfg.MetricsFile = b.Metrics
	}
}

// RunBuild converts the configured tree, writes metrics when asked to and
// prints a summary to w. A run where any file failed returns a build error.
func RunBuild(w io.Writer, cfg *config.Config) error {
	recorder := metrics.NewPrometheusRecorder(nil)
	builder, err := build.New(cfg, build.WithRecorder(recorder), build.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Converting %s (%s links)\n", cfg.SourceRoot, cfg.Mode())

	rep, runErr := builder.Run()
	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	PrintSummary(w, rep)
	if rep.Outcome == build.OutcomeFailed {
		return errors.BuildError(fmt.Sprintf("%d file(s) failed to convert", rep.Failed)).
			WithContext("run_id", rep.RunID).
			WithCause(rep.Errors[0]).
			Build()
	}
	return nil
}
