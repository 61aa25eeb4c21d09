package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/listing"
)

// NewFilesCommand creates the files subcommand
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files <directory>",
		Short: "List log files in a directory",
		Long: `List the log files inside a directory, newest first. By default
only files with log-like extensions are shown and the discovery skip
rules apply to subdirectories.

Examples:
  protokoll files /var/log/myservice
  protokoll files /var/log/myservice --recursive --depth 2
  protokoll files /var/log/myservice --pattern '^error-'
  protokoll files /var/log/myservice --all --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, _ := cmd.Flags().GetString("pattern")
			recursive, _ := cmd.Flags().GetBool("recursive")
			depth, _ := cmd.Flags().GetInt("depth")
			all, _ := cmd.Flags().GetBool("all")
			asJSON, _ := cmd.Flags().GetBool("json")
			return runFiles(args[0], listing.Options{
				Pattern:    pattern,
				Recursive:  recursive,
				MaxDepth:   depth,
				IncludeAll: all,
			}, asJSON, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().String("pattern", "", "Only list files whose name matches this regex")
	cmd.Flags().Bool("recursive", false, "Descend into subdirectories")
	cmd.Flags().Int("depth", 0, "Limit recursion depth (0 = unlimited)")
	cmd.Flags().Bool("all", false, "List every file, not only log-like ones")
	cmd.Flags().Bool("json", false, "Emit the listing as JSON")

	return cmd
}

func runFiles(dir string, opts listing.Options, asJSON bool, output, errOut io.Writer) error {
	result, err := listing.List(dir, opts)
	if err != nil {
		return err
	}

	for _, scanErr := range result.Errors {
		fmt.Fprintf(errOut, "Warning: %v\n", scanErr)
	}

	if asJSON {
		return writeJSON(output, result)
	}
	if len(result.Entries) == 0 {
		fmt.Fprintf(output, "No log files in %s\n", dir)
		return nil
	}
	for _, entry := range result.Entries {
		fmt.Fprintf(output, "%-10s %s  %s\n",
			entry.SizeHuman, entry.Modified.Format("2006-01-02 15:04:05"), entry.Path)
	}
	return nil
}
