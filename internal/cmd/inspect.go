package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwinther/protokoll/internal/inspect"
)

// NewInspectCommand creates the inspect subcommand
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the safety descriptor for a file",
		Long: `Inspect a file without reading its content: size, type
classification, binary heuristic and detected text encoding.

The inspection itself never fails; problems with the file are reported
inside the descriptor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runInspect(args[0], asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("json", false, "Emit the descriptor as JSON")

	return cmd
}

func runInspect(path string, asJSON bool, output io.Writer) error {
	info := inspect.GetFileInfo(path)
	if asJSON {
		return writeJSON(output, info)
	}
	printFileInfo(output, info)
	return nil
}

func printFileInfo(output io.Writer, info *inspect.FileInfo) {
	fmt.Fprintf(output, "Path:       %s\n", info.Path)
	if info.Error != "" {
		fmt.Fprintf(output, "Error:      %s\n", info.Error)
		return
	}
	fmt.Fprintf(output, "Size:       %s (%d bytes)\n", info.SizeHuman, info.Size)
	fmt.Fprintf(output, "Modified:   %s\n", info.Modified.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(output, "Log file:   %v\n", info.IsLogFile)
	fmt.Fprintf(output, "Compressed: %v\n", info.IsCompressed)
	fmt.Fprintf(output, "Binary:     %v\n", info.IsBinary)
	if info.Encoding != "" {
		fmt.Fprintf(output, "Encoding:   %s\n", info.Encoding)
	}
	fmt.Fprintf(output, "Readable:   %v\n", info.Readable)
	for _, warning := range info.Warnings {
		fmt.Fprintf(output, "Warning:    %s\n", warning)
	}
}
