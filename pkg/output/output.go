// Package output writes the merged log to its destination file.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath derives the output path used when none is given on the
// command line: the absolute path of the input with ".sorted" appended.
func DefaultPath(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", input, err)
	}
	return abs + ".sorted", nil
}

// WriteLines writes lines to path, one per line, replacing any existing
// file.
func WriteLines(path string, lines []string) error {
	file, err := os.Create(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return file.Close()
}
