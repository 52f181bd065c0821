package logcat

import "strings"

const (
	// restartPrefix begins lines like "--------- beginning of /dev/log/main"
	// that logcat emits when a log segment restarts.
	restartPrefix = "--------- beginning of"

	// noiseMarker identifies garbage collector diagnostics that tidy mode
	// discards.
	noiseMarker = "GC_CONCURRENT freed"
)

// IsRestartMarker reports whether the line announces a log restart.
// Restart markers inherit the key of the line before them instead of
// deriving their own, which keeps them in relative position.
func IsRestartMarker(line string) bool {
	return strings.HasPrefix(line, restartPrefix)
}

// IsNoise reports whether the line is a known-noisy diagnostic that tidy
// mode removes before grouping.
func IsNoise(line string) bool {
	return strings.Contains(line, noiseMarker)
}
