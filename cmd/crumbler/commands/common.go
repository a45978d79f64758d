package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/crumbler/internal/config"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "crumbler.yaml"

// Global context passed to subcommands. Nil writers mean stdout and stderr.
type Global struct {
	Out io.Writer
	Err io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) errOut() io.Writer {
	if g == nil || g.Err == nil {
		return os.Stderr
	}
	return g.Err
}

// CLI definition & global flags - used by commands that need access to root config.
// -h is kong's help flag and -c is build's --css, so --html and --config are long-only.
type CLI struct {
	Config  string           `name:"config" help:"Configuration file path (default: crumbler.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"withargs" help:"Convert a Markdown tree into HTML with breadcrumbs (default command)"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
	Crumbs CrumbsCmd `cmd:"" help:"Print each directory's index document and breadcrumb chain without writing output"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(NewLogger(os.Stderr, c.Verbose, config.LoggingConfig{}))
	return nil
}

// NewLogger builds the process logger. The configured level applies unless
// -v asks for debug output; CRUMBLER_LOG_LEVEL overrides both.
func NewLogger(w io.Writer, verbose bool, lc config.LoggingConfig) *slog.Logger {
	level := config.NormalizeLogLevel(lc.Level).SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	if env := os.Getenv("CRUMBLER_LOG_LEVEL"); env != "" {
		level = config.NormalizeLogLevel(env).SlogLevel()
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(lc.Format) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadConfig reads the configuration file. An empty path falls back to
// DefaultConfigFile, and to built-in defaults when that file does not exist.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = DefaultConfigFile
	}
	return config.Load(path)
}

// SourceFlags select the tree to read. Shared by build and crumbs.
type SourceFlags struct {
	Path   string `short:"p" name:"path" help:"Source root to convert"`
	Dirout string `short:"d" name:"dirout" help:"Output directory, relative to the source root"`
}

func (s SourceFlags) apply(cfg *config.Config) {
	if s.Path != "" {
		cfg.SourceRoot = s.Path
	}
	if s.Dirout != "" {
		cfg.OutputDirectory = s.Dirout
	}
}
