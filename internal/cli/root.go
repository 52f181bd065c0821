// Package cli provides the command-line interface for sortlog.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errUsage signals that the command line could not be understood and the
// usage text should be shown instead of an error message.
var errUsage = errors.New("usage")

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			return 2
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sortlog [-tidy|-notidy] [-out outputFile] [inputFile]+",
		Short: "Merge and sort Android logcat captures",
		Long: `Sortlog merges one or more logcat capture files into a single sorted file.

Captures taken over overlapping time windows are combined: lines are ordered
chronologically, a line that appears in more than one capture is emitted only
once, and captures taken before the device clock was set (every line dated
January 1) are grouped by the order in which their processes first appear.

Gzip-compressed captures are detected by a .gz name suffix and decompressed
transparently. Input names may use wildcards, including ** for recursive
matching.`,
		// Flags use the traditional single-dash and slash forms, so they are
		// parsed by hand rather than by pflag.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseArgs(args)
			if err != nil {
				return err
			}
			return runSort(cmd, opts)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// printUsage writes the usage text shown for command-line mistakes.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: sortlog [-tidy|-notidy] [-out outputFile] [inputFile]+")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "inputFile - a name of a logcat file to sort (wildcards supported). By default, output")
	fmt.Fprintln(w, "            has the same name as the first input but with '.sorted' appended.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-[no]tidy - when tidying, superfluous lines such as garbage collector messages are removed")
}
