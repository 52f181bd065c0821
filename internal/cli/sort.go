package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"sortlog/pkg/output"
	"sortlog/pkg/parser"
	"sortlog/pkg/sorter"
)

// Options holds the parsed command line.
type Options struct {
	Tidy    bool
	OutPath string
	Inputs  []string
}

// parseArgs interprets the traditional argument conventions: single-dash
// and slash flag forms, with everything else collected as an input pattern.
func parseArgs(args []string) (*Options, error) {
	opts := &Options{Tidy: true}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-?", "/?", "-help", "--help":
			return nil, errUsage
		case "-tidy", "/tidy":
			opts.Tidy = true
		case "-notidy", "/notidy":
			opts.Tidy = false
		case "-out", "/out":
			i++
			if i >= len(args) {
				return nil, errUsage
			}
			opts.OutPath = args[i]
		default:
			opts.Inputs = append(opts.Inputs, args[i])
		}
	}

	if len(opts.Inputs) == 0 {
		return nil, errUsage
	}

	return opts, nil
}

// runSort expands the input patterns, folds every readable input into a
// sorter, and writes the merged result. Per-file failures are reported and
// the run continues; only an empty run is treated as a usage mistake.
func runSort(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	candidates, err := parser.ExpandGlobs(opts.Inputs)
	if err != nil {
		return fmt.Errorf("expanding input patterns: %w", err)
	}

	s := sorter.NewSorter(sorter.WithTidy(opts.Tidy))

	outPath := opts.OutPath
	outCanon := ""
	if outPath != "" {
		outCanon = canonicalPath(outPath)
	}

	processed := 0
	for _, path := range candidates {
		// Never read our own output
		if outCanon != "" && canonicalPath(path) == outCanon {
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "reading '%s'\n", filepath.Base(path))

		src, err := parser.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(cmd.ErrOrStderr(), "file %q not found\n", filepath.Base(path))
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			continue
		}

		// The first input that opens names the output
		if outPath == "" {
			outPath, err = output.DefaultPath(path)
			if err != nil {
				src.Close()
				return fmt.Errorf("resolving output path: %w", err)
			}
			outCanon = canonicalPath(outPath)
		}

		err = s.Consume(ctx, src)
		closeErr := src.Close()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			// Lines folded before the failure stay in the store
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		} else if closeErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), closeErr)
		}
		processed++
	}

	if processed == 0 {
		return errUsage
	}

	fmt.Fprintf(cmd.OutOrStdout(), "emitting '%s'\n", filepath.Base(outPath))

	if err := output.WriteLines(outPath, s.Merge()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "file %q not found\n", filepath.Base(outPath))
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	return nil
}

// canonicalPath resolves path to an absolute, symlink-free form where
// possible. Resolution failures fall back to the cleaned absolute path, so
// comparisons still work for files that do not exist yet.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	// The file may not exist yet; canonicalize its directory instead.
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}
	return abs
}
