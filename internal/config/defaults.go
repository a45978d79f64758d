package config

const (
	DefaultSourceRoot      = "."
	DefaultOutputDirectory = "build"
	DefaultChainCacheSize  = 256
)

// DefaultPageTemplate is the page skeleton used when no page template is configured.
const DefaultPageTemplate = `<!doctype html>

<html lang="en">
<head>
  <meta charset="utf-8">

  <title>{title}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">

  {style}
  {script}

</head>

<body>
    <nav class="breadcrumbs">
        <ul>
            {breadcrumbs}
        </ul>
    </nav>
    <div class="page">
        <nav class="toc">
            {toc}
        </nav>
        <section class="main">
            {body}
        </section>
    </div>
</body>
</html>
`

// DefaultBreadcrumbTemplate renders one breadcrumb entry.
const DefaultBreadcrumbTemplate = `<li>
  <a href="{href}">{text}</a>
</li>`

func (c *Config) applyDefaults() {
	if c.SourceRoot == "" {
		c.SourceRoot = DefaultSourceRoot
	}
	if c.OutputDirectory == "" {
		c.OutputDirectory = DefaultOutputDirectory
	}
	if c.ChainCacheSize <= 0 {
		c.ChainCacheSize = DefaultChainCacheSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = string(LogLevelInfo)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(LogFormatText)
	}
}
