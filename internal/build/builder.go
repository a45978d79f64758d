// Package build runs the two-phase conversion of a source tree: indexing
// directories for breadcrumbs, then converting every document into the
// mirrored output tree.
package build

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/crumbler/internal/config"
	"git.home.luguber.info/inful/crumbler/internal/crumbs"
	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
	"git.home.luguber.info/inful/crumbler/internal/links"
	"git.home.luguber.info/inful/crumbler/internal/logfields"
	"git.home.luguber.info/inful/crumbler/internal/markdown"
	"git.home.luguber.info/inful/crumbler/internal/metrics"
	"git.home.luguber.info/inful/crumbler/internal/page"
	"git.home.luguber.info/inful/crumbler/internal/paths"
	"git.home.luguber.info/inful/crumbler/internal/tree"
)

const (
	StageIndex   = "index"
	StageConvert = "convert"
	StageCopy    = "copy"
)

// Builder converts one source tree according to a configuration.
type Builder struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	md       markdown.Converter
	conv     *page.Converter
	resolver *paths.Resolver
	runID    string
	titles   map[tree.NodeID]string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithConverter replaces the goldmark Markdown converter.
func WithConverter(md markdown.Converter) Option {
	return func(b *Builder) { b.md = md }
}

// New validates cfg and prepares a builder. cfg is copied; template files are
// read into the copy so cfg itself is left untouched.
func New(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, errors.ConfigError("configuration is required").Build()
	}
	b := &Builder{
		cfg:      *cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		runID:    uuid.NewString(),
		titles:   make(map[tree.NodeID]string),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.cfg.ChainCacheSize <= 0 {
		b.cfg.ChainCacheSize = config.DefaultChainCacheSize
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := b.cfg.ResolveTemplates(); err != nil {
		return nil, err
	}
	if b.md == nil {
		md, err := markdown.New(markdown.Options{HighlightStyle: b.cfg.HighlightStyle})
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid markdown options").
				Fatal().
				WithContext("highlight_style", b.cfg.HighlightStyle).
				Build()
		}
		b.md = md
	}

	b.logger = b.logger.With(logfields.RunID(b.runID))
	b.resolver = paths.New(b.cfg.Mode(), b.cfg.WebPathRoot)
	b.conv = page.NewConverter(b.md, page.Template{
		Page:         b.cfg.PageTemplate,
		Breadcrumb:   b.cfg.BreadcrumbTemplate,
		Stylesheets:  b.cfg.Stylesheets,
		Scripts:      b.cfg.Scripts,
		DefaultTitle: b.cfg.Title(),
	})
	return b, nil
}

// RunID identifies this builder's run in logs and reports.
func (b *Builder) RunID() string { return b.runID }

// Config returns the resolved configuration the builder runs with.
func (b *Builder) Config() config.Config { return b.cfg }

// Run indexes the source tree and converts it. The error is non-nil only for
// failures that prevent conversion from starting; per-file failures are in
// the report.
func (b *Builder) Run() (*Report, error) {
	start := time.Now()
	idx, err := b.Index()
	if err != nil {
		b.recorder.IncStageResult(StageIndex, metrics.ResultFailed)
		b.recorder.IncBuildOutcome(string(OutcomeFailed))
		return nil, err
	}
	indexDuration := time.Since(start)

	rep := b.Convert(idx)
	rep.Start = start
	rep.StageDurations[StageIndex] = indexDuration
	rep.finish()

	if b.cfg.ReportFile != "" {
		if err := rep.Persist(b.cfg.ReportFile); err != nil {
			b.logger.Warn("Failed to write build report", logfields.Path(b.cfg.ReportFile), logfields.Error(err))
		}
	}

	b.recorder.ObserveBuildDuration(rep.Duration())
	b.recorder.IncBuildOutcome(string(rep.Outcome))
	b.logger.Info("Build finished",
		slog.String("outcome", string(rep.Outcome)),
		slog.Int("converted", rep.Converted),
		slog.Int("copied", rep.Copied),
		slog.Int("failed", rep.Failed),
		logfields.Duration(rep.Duration()))
	return rep, nil
}

// Index scans the source tree and resolves every directory's index document.
func (b *Builder) Index() (*crumbs.Index, error) {
	start := time.Now()
	t, err := tree.Scan(b.cfg.SourceRoot, tree.ScanOptions{
		OutputDir: b.cfg.OutputPath(),
		Exclude:   b.cfg.TemplatePaths(),
	})
	if err != nil {
		category := errors.CategoryFileSystem
		if stdErrors.Is(err, tree.ErrSourceRootMissing) || stdErrors.Is(err, tree.ErrNotDirectory) {
			category = errors.CategoryConfig
		}
		return nil, errors.WrapError(err, category, "failed to scan source tree").
			Fatal().
			WithContext("source_root", b.cfg.SourceRoot).
			Build()
	}

	idx := crumbs.BuildIndex(t, func(doc tree.NodeID) string { return b.title(t, doc) })
	d := time.Since(start)
	b.recorder.ObserveStageDuration(StageIndex, d)
	b.recorder.IncStageResult(StageIndex, metrics.ResultSuccess)
	b.logger.Info("Indexed source tree",
		logfields.Stage(StageIndex),
		logfields.Path(t.Root),
		slog.Int("directories", len(t.Dirs())),
		slog.Int("indexed", idx.Len()),
		logfields.Duration(d))
	return idx, nil
}

// title extracts the source title of a document for breadcrumb labels.
// Unreadable documents yield "" so their label falls back to the file stem.
func (b *Builder) title(t *tree.Tree, doc tree.NodeID) string {
	if title, ok := b.titles[doc]; ok {
		return title
	}
	n := t.Node(doc)
	title := ""
	if d, err := b.convertSource(n); err != nil {
		b.logger.Warn("Could not read title of index document", logfields.File(n.Rel), logfields.Error(err))
	} else {
		title = d.SourceTitle
	}
	b.titles[doc] = title
	return title
}

func (b *Builder) convertSource(n *tree.Node) (*page.Document, error) {
	src, err := os.ReadFile(n.Abs)
	if err != nil {
		return nil, err
	}
	if n.Kind == tree.KindSVG {
		return b.conv.ConvertSVG(src)
	}
	return b.conv.Convert(src)
}

// Convert writes every document, and every asset when copying is enabled,
// into the output tree. It never stops early: failures are recorded per file.
func (b *Builder) Convert(idx *crumbs.Index) *Report {
	t := idx.Tree()
	rep := newReport(b.runID)
	rep.Mode = b.cfg.Mode().String()
	rep.SourceRoot = t.Root
	rep.OutputDir = b.cfg.OutputPath()
	rep.Directories = len(t.Dirs())
	rep.Indexed = idx.Len()

	chains, err := crumbs.NewResolver(idx, b.cfg.ChainCacheSize)
	if err != nil {
		rep.Errors = append(rep.Errors, errors.WrapError(err, errors.CategoryInternal, "failed to create breadcrumb resolver").Build())
		rep.finish()
		return rep
	}
	rewriter := links.New(t, b.resolver, links.Options{RewriteAssets: b.cfg.ShouldRewriteAssets()})

	// Output path -> source that produced it. Documents claim first, so an
	// asset never replaces a converted page.
	claims := make(map[string]string)

	start := time.Now()
	docs := t.Documents()
	rep.Documents = len(docs)
	for _, id := range docs {
		b.convertDocument(t, id, chains, rewriter, claims, rep)
	}
	rep.StageDurations[StageConvert] = time.Since(start)
	b.recorder.ObserveStageDuration(StageConvert, rep.StageDurations[StageConvert])
	b.recorder.IncStageResult(StageConvert, stageResult(rep))

	assets := t.Assets()
	rep.Assets = len(assets)
	if b.cfg.ShouldCopyAssets() {
		start = time.Now()
		for _, id := range assets {
			b.copyAsset(t, id, claims, rep)
		}
		rep.StageDurations[StageCopy] = time.Since(start)
		b.recorder.ObserveStageDuration(StageCopy, rep.StageDurations[StageCopy])
	}

	rep.finish()
	return rep
}

func (b *Builder) convertDocument(t *tree.Tree, id tree.NodeID, chains *crumbs.Resolver, rewriter *links.Rewriter, claims map[string]string, rep *Report) {
	n := t.Node(id)
	outRel := paths.OutputRel(n.Rel)
	fr := FileResult{Source: n.Rel, Output: outRel, Kind: n.Kind.String(), Status: StatusConverted}
	if !b.claim(claims, rep, fr) {
		return
	}

	doc, err := b.convertSource(n)
	if err != nil {
		b.fail(rep, fr, errors.WrapError(err, errors.CategoryConvert, "failed to convert document").
			WithContext("file", n.Rel).
			Build())
		return
	}
	fr.Title = doc.Title
	fr.Fingerprint = doc.Fingerprint
	if n.Kind == tree.KindMarkdown {
		b.titles[id] = doc.SourceTitle
	}

	res := rewriter.Rewrite(doc.Nodes, n.Rel)
	fr.Rewritten = res.Rewritten
	fr.Unresolved = res.Unresolved
	for _, ref := range res.Unresolved {
		b.logger.Warn("Unresolved reference left unchanged", logfields.File(n.Rel), logfields.Ref(ref))
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: unresolved reference %q", n.Rel, ref))
	}
	b.recorder.AddLinks(res.Rewritten, len(res.Unresolved))

	chain := chains.ChainFor(id)
	rendered := make([]page.RenderedCrumb, 0, len(chain))
	for _, c := range chain {
		rendered = append(rendered, page.RenderedCrumb{Href: b.resolver.Href(n.Rel, c.Target), Text: c.Label})
	}
	fr.Breadcrumbs = len(rendered)

	out, err := b.conv.Render(doc, rendered)
	if err != nil {
		b.fail(rep, fr, errors.WrapError(err, errors.CategoryConvert, "failed to render document").
			WithContext("file", n.Rel).
			Build())
		return
	}

	outPath := filepath.Join(b.cfg.OutputPath(), filepath.FromSlash(outRel))
	if err := writeFileAtomic(outPath, []byte(out), 0o644); err != nil {
		b.fail(rep, fr, errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			WithContext("file", n.Rel).
			WithContext("output", outPath).
			Build())
		return
	}

	rep.addFile(fr, nil)
	b.recorder.IncFileResult(fr.Kind, metrics.ResultSuccess)
	b.logger.Debug("Converted document",
		logfields.File(n.Rel),
		logfields.Output(outRel),
		slog.Int("breadcrumbs", fr.Breadcrumbs),
		slog.Int("rewritten", res.Rewritten))
}

func (b *Builder) copyAsset(t *tree.Tree, id tree.NodeID, claims map[string]string, rep *Report) {
	n := t.Node(id)
	fr := FileResult{Source: n.Rel, Output: n.Rel, Kind: n.Kind.String(), Status: StatusCopied}
	if !b.claim(claims, rep, fr) {
		return
	}
	dst := filepath.Join(b.cfg.OutputPath(), filepath.FromSlash(n.Rel))
	if err := copyFileAtomic(n.Abs, dst); err != nil {
		b.fail(rep, fr, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy asset").
			WithContext("file", n.Rel).
			WithContext("output", dst).
			Build())
		return
	}
	rep.addFile(fr, nil)
	b.recorder.IncFileResult(fr.Kind, metrics.ResultSuccess)
}

// claim reserves fr.Output for fr.Source. A second source mapping to the same
// output is recorded as failed and must not be written.
func (b *Builder) claim(claims map[string]string, rep *Report, fr FileResult) bool {
	if owner, taken := claims[fr.Output]; taken {
		b.fail(rep, fr, errors.BuildError("output path already produced by another source").
			WithContext("file", fr.Source).
			WithContext("output", fr.Output).
			WithContext("claimed_by", owner).
			Build())
		return false
	}
	claims[fr.Output] = fr.Source
	return true
}

func (b *Builder) fail(rep *Report, fr FileResult, err *errors.ClassifiedError) {
	rep.addFile(fr, err)
	b.recorder.IncFileResult(fr.Kind, metrics.ResultFailed)
	attrs := []any{logfields.File(fr.Source), logfields.Error(err)}
	if cause := err.Cause(); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	b.logger.Error(err.Message(), attrs...)
}

func stageResult(rep *Report) metrics.ResultLabel {
	switch {
	case rep.Failed > 0:
		return metrics.ResultFailed
	case len(rep.Warnings) > 0:
		return metrics.ResultWarning
	default:
		return metrics.ResultSuccess
	}
}
