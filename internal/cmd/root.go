package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/config"
	"github.com/mwinther/protokoll/internal/logger"
	"github.com/mwinther/protokoll/internal/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for protokoll
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protokoll",
		Short: "Log artifact discovery and safe viewing",
		Long: `Protokoll locates the log directories an application writes to and
reads log files safely: size ceilings, binary detection, encoding
detection, transparent decompression and advisory locking are applied
before any content reaches the terminal.

Custom log locations can be registered per machine and are searched
before the platform application-data directories.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("log-level", "", "Override log level (trace, debug, info, warn, error)")

	// Add subcommands
	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewDirsCommand())
	cmd.AddCommand(NewFilesCommand())
	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewViewCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the protokoll version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "protokoll %s\n", Version)
		},
	}
}

// logLevelFor resolves the effective log level, honoring the persistent
// --log-level flag over the configured level.
func logLevelFor(cmd *cobra.Command) string {
	level := config.LoadDefault().LogLevel
	if flagLevel, err := cmd.Flags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	return level
}

// loggerFor builds the console logger for a command invocation.
func loggerFor(cmd *cobra.Command) logger.Logger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevelFor(cmd))
}

// openRegistry resolves the registry path under the protokoll home.
func openRegistry() (*scanner.Registry, error) {
	path, err := config.RegistryPath()
	if err != nil {
		return nil, err
	}
	return scanner.NewRegistry(path), nil
}
