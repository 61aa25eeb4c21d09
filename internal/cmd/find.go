package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/config"
	"github.com/mwinther/protokoll/internal/logger"
	"github.com/mwinther/protokoll/internal/scanner"
)

// NewFindCommand creates the find subcommand
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <app-name>",
		Short: "Discover log directories for an application",
		Long: `Search for directories holding log files for the named application.

The search runs in tiers: registered custom directories first, then the
platform application-data directories, then common install locations.
Exact name matches suppress weaker potential matches entirely.

Examples:
  protokoll find myservice
  protokoll find myservice --depth 5
  protokoll find myservice --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetInt("depth")
			asJSON, _ := cmd.Flags().GetBool("json")
			return runFind(cmd, args[0], depth, asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int("depth", 0, "Traversal depth below each base directory (0 = use config)")
	cmd.Flags().Bool("json", false, "Emit the result as JSON")

	return cmd
}

// runFind performs discovery and renders the result to output
func runFind(cmd *cobra.Command, appName string, depth int, asJSON bool, output io.Writer) error {
	log := loggerFor(cmd)

	// Scans also log to a run file under the protokoll home, so past
	// discovery traces stay available after the terminal scrolls away.
	if logDir, err := config.LoadDefault().ResolvedLogDir(); err == nil {
		if fileLog, err := logger.NewFileLogger(logDir, logLevelFor(cmd)); err == nil {
			defer fileLog.Close()
			log = logger.Multi(log, fileLog)
		}
	}

	registry, err := openRegistry()
	if err != nil {
		return fmt.Errorf("failed to resolve registry: %w", err)
	}

	if depth <= 0 {
		depth = config.LoadDefault().SearchDepth
	}

	result, err := scanner.New(registry, log).FindLogDirectories(cmd.Context(), appName, depth)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if asJSON {
		return writeJSON(output, result)
	}
	printFindResult(output, appName, result, log)
	return nil
}

func printFindResult(output io.Writer, appName string, result *scanner.Result, log logger.Logger) {
	if result.Reason != "" {
		fmt.Fprintf(output, "No search performed: %s\n", result.Reason)
		return
	}

	if len(result.ExactMatches) > 0 {
		fmt.Fprintf(output, "Log directories for %s:\n", appName)
		for _, dir := range result.ExactMatches {
			fmt.Fprintf(output, "  %s\n", dir)
		}
	} else if len(result.PotentialMatches) > 0 {
		fmt.Fprintf(output, "No exact matches. Possible log directories for %s:\n", appName)
		for _, dir := range result.PotentialMatches {
			fmt.Fprintf(output, "  ? %s\n", dir)
		}
	} else {
		fmt.Fprintf(output, "No log directories found for %s\n", appName)
	}

	for _, dir := range result.Stats.NamedOnly {
		fmt.Fprintf(output, "  (named like %s but holds no log files: %s)\n", appName, dir)
	}

	log.Debugf("scan %s: %d dirs checked, %d skipped in %s",
		result.Stats.RunID, result.Stats.DirsChecked, result.Stats.DirsSkipped, result.Stats.Elapsed)
}

// writeJSON renders v as indented JSON followed by a newline
func writeJSON(output io.Writer, v any) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
