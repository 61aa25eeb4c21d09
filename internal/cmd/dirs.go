package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/scanner"
)

// NewDirsCommand creates the dirs subcommand with its nested actions
func NewDirsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirs",
		Short: "Manage registered custom log directories",
		Long: `Manage the per-machine registry of custom log directories.

Registered directories are searched before the platform application-data
directories during discovery.`,
	}

	cmd.AddCommand(newDirsListCommand())
	cmd.AddCommand(newDirsAddCommand())
	cmd.AddCommand(newDirsRemoveCommand())

	return cmd
}

func newDirsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered custom log directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry()
			if err != nil {
				return err
			}
			return listDirs(registry, cmd.OutOrStdout())
		},
	}
}

func newDirsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <directory>",
		Short: "Register a custom log directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry()
			if err != nil {
				return err
			}
			if err := registry.Add(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", args[0])
			return nil
		},
	}
}

func newDirsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <directory>",
		Short: "Remove a registered custom log directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := openRegistry()
			if err != nil {
				return err
			}
			if err := registry.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

// listDirs prints the registry contents, surfacing a corrupt registry as a
// warning rather than a failure so the command stays usable.
func listDirs(registry *scanner.Registry, output io.Writer) error {
	dirs, err := registry.List()
	if err != nil {
		fmt.Fprintf(output, "Warning: %v\n", err)
	}
	if len(dirs) == 0 {
		fmt.Fprintln(output, "No custom log directories registered")
		return nil
	}
	for _, dir := range dirs {
		fmt.Fprintln(output, dir)
	}
	return nil
}
