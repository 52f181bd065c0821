// Package sorter merges logcat capture files into a single chronologically
// ordered stream, deduplicating lines that appear in more than one capture.
package sorter

import (
	"context"
	"fmt"
	"io"
	"sort"

	"sortlog/pkg/logcat"
	"sortlog/pkg/parser"
)

// Sorter folds lines from one or more log sources into a shared store and
// merges them into a single ordered, deduplicated output.
type Sorter struct {
	registry *logcat.Registry
	store    *Store

	// Options
	tidy bool
}

// SorterOption configures sorter behavior.
type SorterOption func(*Sorter)

// WithTidy controls whether known noise lines are discarded. Enabled by
// default.
func WithTidy(tidy bool) SorterOption {
	return func(s *Sorter) {
		s.tidy = tidy
	}
}

// NewSorter creates a sorter ready to consume log sources.
func NewSorter(opts ...SorterOption) *Sorter {
	s := &Sorter{
		registry: logcat.NewRegistry(),
		store:    NewStore(),
		tidy:     true,
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Consume reads source to exhaustion, folding every line into the sorter.
// Lines folded before a read error are retained.
func (s *Sorter) Consume(ctx context.Context, source parser.LineSource) error {
	// Every source starts from the default key, so leading garbage and
	// restart markers at the top of a file sort to the front instead of
	// inheriting a key from the previous file.
	prev := s.registry.Resolve(logcat.DefaultKey())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := source.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading log source: %w", err)
		}

		prev = s.Fold(prev, line)
	}
}

// Fold incorporates a single line given the key of the line before it and
// returns the key to carry forward to the next line.
func (s *Sorter) Fold(prev logcat.Key, line string) logcat.Key {
	if s.tidy && logcat.IsNoise(line) {
		return prev
	}

	key := s.registry.Resolve(logcat.ExtractKey(line, prev))
	s.store.Append(key, line)
	return key
}

// Merge returns all accumulated lines in sort-key order. Keys are ordered
// by Key.Compare; lines sharing a key keep their insertion order.
func (s *Sorter) Merge() []string {
	keys := s.store.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})

	merged := make([]string, 0, s.store.LineCount())
	for _, key := range keys {
		merged = append(merged, s.store.Lines(key)...)
	}
	return merged
}
