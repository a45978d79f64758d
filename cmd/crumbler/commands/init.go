package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"git.home.luguber.info/inful/crumbler/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory for the generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "crumbler.yaml".
	if i.Output != "" {
		return RunInit(g.out(), filepath.Join(i.Output, DefaultConfigFile), i.Force)
	}
	if root.Config != "" {
		return RunInit(g.out(), root.Config, i.Force)
	}
	return RunInit(g.out(), DefaultConfigFile, i.Force)
}

func RunInit(w io.Writer, configPath string, force bool) error {
	fmt.Fprintf(w, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Fprintln(w, "Initialization failed")
		return err
	}
	fmt.Fprintln(w, "initialized successfully")
	return nil
}
