// Sortlog - Logcat Capture Merge Tool
//
// Sortlog merges one or more Android logcat capture files into a single
// chronologically sorted, deduplicated output file.
package main

import (
	"os"

	"sortlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
