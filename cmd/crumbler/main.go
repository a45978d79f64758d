package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/crumbler/cmd/crumbler/commands"
	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
	"git.home.luguber.info/inful/crumbler/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("crumbler"),
		kong.Description("Convert a directory tree of Markdown into HTML with breadcrumb navigation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&commands.Global{}); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
