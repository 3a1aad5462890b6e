/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from surface.go, which mirrors the tags under the root, and
// dispatch.go, which acts on the resolved invocation.
//
// Design: the command tree depends on the tags file, so config and tags are
// loaded before cobra sees the arguments. Errors are printed here rather
// than by cobra so they get a single consistent prefix.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/opentag/internal/config"
	"github.com/jpl-au/opentag/internal/log"
	"github.com/jpl-au/opentag/internal/path"
	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/store"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/version"
	"github.com/spf13/cobra"
)

const rootLong = `Open, copy or print paths and URLs by tag.

Tags nest: each tag is a command and its subtags are its subcommands, so
"ot work docs" opens the docs tag under work. Action flags may be given at
any level and apply to the tag finally named.

Every level also accepts the management commands:
  add [NAME]   add a tag at this level (interactive without a name)
  remove       remove this tag (chosen interactively at the top level)
  update       change this tag's fields (edited interactively without flags)

Like the action flags, --help applies to the level it follows: use
"ot work docs --help" rather than "ot work --help docs".`

// app is the state shared by one invocation.
type app struct {
	cfg   *config.Config
	store *store.Store
	tree  tag.Tree
}

// Execute runs the command line and handles process lifecycle.
// Opens audit logging, runs the invocation, and exits with code 1 on error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	err := Run(os.Args[1:])
	log.Close()

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

var errPrefix = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

func printError(err error) {
	fmt.Fprintf(errOut, "%s %v\n", errPrefix.Render("error:"), err)
}

// Run loads the configuration and tags, builds the command tree, and
// executes args against it.
func Run(args []string) error {
	a, err := load()
	if err != nil {
		return err
	}
	root := a.rootCmd()
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func load() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	p, err := path.Data(cfg.DataPath())
	if err != nil {
		return nil, err
	}
	st, err := store.Open(p)
	if err != nil {
		return nil, err
	}
	t, err := st.Load()
	if err != nil {
		return nil, err
	}
	log.SetProject(st.Path())
	return &app{cfg: cfg, store: st, tree: t}, nil
}

// rootCmd builds the root command with every tag mirrored beneath it.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "ot [flags] TAG [flags] [SUBTAG...]",
		Short:             "Open, copy or print paths and URLs by tag",
		Long:              rootLong,
		Version:           version.Short(),
		Args:              cobra.ArbitraryArgs,
		TraverseChildren:  true,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:              a.run,
	}
	root.SetVersionTemplate(version.Get().String())
	addActionFlags(root)
	root.Flags().Bool("mcp", false, "Serve the tags to MCP clients over stdio")
	root.MarkFlagsMutuallyExclusive("mcp", "list")

	root.AddGroup(&cobra.Group{ID: tagsGroup, Title: "Tags:"})
	a.addUnits(root, project.Project(a.tree).Units, tagsGroup)
	return root
}
