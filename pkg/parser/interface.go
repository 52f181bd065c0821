package parser

import "context"

// LineSource provides sequential access to the lines of one log file.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line with any leading NUL bytes stripped.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (string, error)

	// Close releases any resources held by the source.
	Close() error
}
