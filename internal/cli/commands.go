// Package cli wires the dotlink commands into a cobra command tree.
// All behavior lives in pkg/commands; this package only parses flags,
// resolves paths and renders results.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dotlink/dotlink/internal/version"
	"github.com/dotlink/dotlink/pkg/commands/add"
	"github.com/dotlink/dotlink/pkg/commands/link"
	"github.com/dotlink/dotlink/pkg/commands/remove"
	"github.com/dotlink/dotlink/pkg/commands/status"
	"github.com/dotlink/dotlink/pkg/commands/unlink"
	"github.com/dotlink/dotlink/pkg/display"
	"github.com/dotlink/dotlink/pkg/logging"
	"github.com/dotlink/dotlink/pkg/paths"
	"github.com/dotlink/dotlink/pkg/types"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		root      string
		verbosity int
		dryRun    bool
		force     bool
		format    string
		yes       bool
	)

	rootCmd := &cobra.Command{
		Use:   "dotlink",
		Short: "A symlink-based dotfiles manager",
		Long: `dotlink keeps configuration files in a version-controlled dotfiles
directory and links them into your home directory. The mapping between
repository files and home paths lives in a config file inside the
dotfiles directory itself, so the repository stays self-contained.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, paths.LogFile())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&root, "root", "r", "", "Dotfiles directory (defaults to $DOTLINK_ROOT)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Overwrite conflicting targets when linking")
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, term, text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Assume yes on interactive confirmations")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newUnlinkCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())

	return rootCmd
}

// cmdContext bundles the resolved paths and renderer every subcommand
// needs.
type cmdContext struct {
	paths    *paths.Paths
	renderer *display.Renderer
}

func newCmdContext(cmd *cobra.Command) (*cmdContext, error) {
	flags := cmd.Root().PersistentFlags()

	root, _ := flags.GetString("root")
	p, err := paths.New(root)
	if err != nil {
		return nil, err
	}

	formatName, _ := flags.GetString("format")
	f, err := display.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	f = display.Detect(f, os.Stdout)

	return &cmdContext{
		paths:    p,
		renderer: display.NewRenderer(os.Stdout, f),
	}, nil
}

// reportOutcome renders the report and turns failures into a non-zero
// exit without aborting the rendering itself.
func reportOutcome(r *display.Renderer, report *types.Report) error {
	if err := r.Report(report); err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("completed with errors")
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotlink version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of every configured mapping",
		Long: `Status probes the filesystem and classifies every configured mapping
as linked, unlinked, missing, or conflicting. It never changes anything.`,
		Example: `  # Show all mappings
  dotlink status

  # Machine-readable output
  dotlink status --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newCmdContext(cmd)
			if err != nil {
				return err
			}

			result, err := status.Run(status.Options{
				DotfilesRoot: ctx.paths.DotfilesRoot(),
				HomeDir:      ctx.paths.HomeDir(),
				ConfigFile:   ctx.paths.ConfigFile(),
			})
			if err != nil {
				return err
			}

			return ctx.renderer.Statuses(result.Statuses)
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Create the symlinks for all configured mappings",
		Long: `Link creates a symlink in your home directory for every mapping whose
target does not exist yet. Conflicting targets are left alone unless
--force is given; missing sources are reported but never fatal.`,
		Example: `  # Link everything that is safe to link
  dotlink link

  # Preview without changing anything
  dotlink link --dry-run

  # Overwrite conflicting files
  dotlink link --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newCmdContext(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Root().PersistentFlags()
			dryRun, _ := flags.GetBool("dry-run")
			force, _ := flags.GetBool("force")

			result, err := link.Run(link.Options{
				DotfilesRoot: ctx.paths.DotfilesRoot(),
				HomeDir:      ctx.paths.HomeDir(),
				ConfigFile:   ctx.paths.ConfigFile(),
				DryRun:       dryRun,
				Force:        force,
			})
			if err != nil {
				return err
			}

			return reportOutcome(ctx.renderer, result.Report)
		},
	}
}

func newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: "Remove the symlinks of all configured mappings",
		Long: `Unlink removes every symlink that currently points at its configured
source. Targets in any other state are left untouched, and the
configuration itself is kept.`,
		Example: `  # Remove all managed symlinks
  dotlink unlink

  # Preview without changing anything
  dotlink unlink --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newCmdContext(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := unlink.Run(unlink.Options{
				DotfilesRoot: ctx.paths.DotfilesRoot(),
				HomeDir:      ctx.paths.HomeDir(),
				ConfigFile:   ctx.paths.ConfigFile(),
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}

			return reportOutcome(ctx.renderer, result.Report)
		},
	}
}

func newAddCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Put a file under dotlink management",
		Long: `Add registers a new mapping. A path inside the dotfiles directory is
linked into your home directory. A path inside your home directory is
adopted: the file is moved into the dotfiles directory and replaced by
a symlink.`,
		Example: `  # Link a file that already lives in the dotfiles directory
  dotlink add ~/dotfiles/gitconfig

  # Adopt a file from the home directory
  dotlink add ~/.config/nvim

  # Choose where the symlink goes
  dotlink add ~/dotfiles/profile --target .zprofile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newCmdContext(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Root().PersistentFlags()
			dryRun, _ := flags.GetBool("dry-run")
			yes, _ := flags.GetBool("yes")

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			opts := add.Options{
				DotfilesRoot: ctx.paths.DotfilesRoot(),
				HomeDir:      ctx.paths.HomeDir(),
				ConfigFile:   ctx.paths.ConfigFile(),
				Path:         path,
				Target:       target,
				DryRun:       dryRun,
			}
			// A pipe cannot answer a prompt; apply without asking, as
			// with --yes.
			if !yes && isatty.IsTerminal(os.Stdin.Fd()) {
				opts.Confirm = confirmChanges
			}

			result, err := add.Run(opts)
			if err != nil {
				return err
			}
			return renderAddResult(ctx.renderer, result, dryRun)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Link target relative to the home directory (defaults to the path's own relative location)")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var unlinkFlag bool

	cmd := &cobra.Command{
		Use:   "remove <target>",
		Short: "Remove a mapping from the configuration",
		Long: `Remove deletes the mapping with the given target path (relative to
your home directory) from the configuration. The symlink itself is kept
unless --unlink is given.`,
		Example: `  # Forget about a mapping, keep the link on disk
  dotlink remove .gitconfig

  # Forget about it and remove its symlink
  dotlink remove .gitconfig --unlink`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newCmdContext(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			result, err := remove.Run(remove.Options{
				DotfilesRoot: ctx.paths.DotfilesRoot(),
				HomeDir:      ctx.paths.HomeDir(),
				ConfigFile:   ctx.paths.ConfigFile(),
				Target:       args[0],
				Unlink:       unlinkFlag,
				DryRun:       dryRun,
			})
			if err != nil {
				return err
			}

			if ctx.renderer.Machine() {
				if err := ctx.renderer.Result(result); err != nil {
					return err
				}
				if result.Report != nil && result.Report.Failed() {
					return fmt.Errorf("completed with errors")
				}
				return nil
			}
			if result.Report != nil {
				return reportOutcome(ctx.renderer, result.Report)
			}
			msg := fmt.Sprintf("removed mapping for %s", result.Removed.Target)
			if dryRun {
				msg = fmt.Sprintf("would remove mapping for %s", result.Removed.Target)
			}
			return ctx.renderer.Message(msg)
		},
	}

	cmd.Flags().BoolVar(&unlinkFlag, "unlink", false, "Also remove the mapping's symlink")
	return cmd
}

// confirmChanges previews the pending changes and asks the user to
// proceed.
func confirmChanges(changes []string) bool {
	fmt.Println("The following changes will be applied:")
	for _, c := range changes {
		fmt.Println("  - " + c)
	}
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		Show("Continue?")
	if err != nil {
		return false
	}
	return ok
}

func renderAddResult(r *display.Renderer, result *add.Result, dryRun bool) error {
	if r.Machine() {
		return r.Result(result)
	}

	if len(result.Changes) == 0 && len(result.Skipped) == 0 {
		return r.Message("nothing to do")
	}

	switch {
	case result.Applied:
		for _, c := range result.Changes {
			if err := r.Message(c); err != nil {
				return err
			}
		}
	case dryRun && len(result.Changes) > 0:
		if err := r.Message("would apply:"); err != nil {
			return err
		}
		for _, c := range result.Changes {
			if err := r.Message("  - " + c); err != nil {
				return err
			}
		}
	case len(result.Changes) > 0:
		return r.Message("aborted, nothing changed")
	}

	for _, s := range result.Skipped {
		if err := r.Message("skipped: " + s); err != nil {
			return err
		}
	}
	return nil
}
