// Package parser provides log file reading and wildcard expansion.
package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileSource implements LineSource for reading one log file, transparently
// decompressing gzip input and stripping leading NUL bytes from each line.
type FileSource struct {
	path    string
	file    *os.File
	gzip    *gzip.Reader
	scanner *bufio.Scanner
}

// Open opens the log file at path. Files named with a .gz suffix
// (case-insensitive) are decompressed on the fly; the suffix is the only
// signal, there is no content sniffing.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	src := &FileSource{path: path, file: f}
	var r io.Reader = f

	if IsGzipPath(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening gzip file %s: %w", path, err)
		}
		src.gzip = gz
		r = gz
	}

	src.scanner = bufio.NewScanner(r)
	src.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	return src, nil
}

// Next returns the next line of the file with any leading NUL bytes
// stripped. Returns io.EOF when the file is exhausted.
func (s *FileSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		// Devices flush partially written blocks as NULs ahead of the
		// real line content.
		return strings.TrimLeft(s.scanner.Text(), "\x00"), nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}
	return "", io.EOF
}

// Close releases the underlying file and any decompression state.
func (s *FileSource) Close() error {
	var err error
	if s.gzip != nil {
		err = s.gzip.Close()
		s.gzip = nil
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}

// IsGzipPath reports whether the file name indicates gzip compression.
func IsGzipPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".gz")
}
