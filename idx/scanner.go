// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idx

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// ErrInvalidRecord indicates a malformed line in the .index file.
var ErrInvalidRecord = errors.New("invalid index record")

// Word is an .index file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// IsInfo reports whether the word is a 00database metadata record. Older
// dictfmt versions write the names with a hyphen.
func (w *Word) IsInfo() bool {
	return strings.HasPrefix(w.Word, "00database") || strings.HasPrefix(w.Word, "00-database")
}

// Scanner scans an index from start to end.
type Scanner struct {
	r       io.ReadCloser
	s       *bufio.Scanner
	word    *Word
	line    int
	skipped []error
}

// ScannerOptions are options for scanning an .index file.
type ScannerOptions struct {
	// MaxLineSize is the longest line accepted. Longer lines stop the scan
	// with an error.
	MaxLineSize int
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{
	MaxLineSize: 1 << 20,
}

// NewScanner return a new index scanner that scans the index from start to
// end. The Scanner assumes ownership of the reader and should be closed with
// the Close method.
func NewScanner(r io.ReadCloser, options *ScannerOptions) *Scanner {
	if options == nil {
		options = DefaultScannerOptions
	}
	maxLine := options.MaxLineSize
	if maxLine <= 0 {
		maxLine = DefaultScannerOptions.MaxLineSize
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Scanner{
		r: r,
		s: s,
	}
}

// Scan advances to the next well-formed index record, skipping malformed
// lines. It returns false when the end of the index is reached or a read
// error occurs.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.line++
		line := strings.TrimRight(s.s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := parseLine(line)
		if err != nil {
			s.skipped = append(s.skipped, fmt.Errorf("line %d: %w", s.line, err))
			continue
		}
		s.word = w
		return true
	}
	s.word = nil
	return false
}

// Word returns the record found by the last call to Scan.
func (s *Scanner) Word() *Word {
	return s.word
}

// Skipped returns the errors for malformed lines skipped so far.
func (s *Scanner) Skipped() []error {
	return s.skipped
}

// Err returns the first read error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	return nil
}

func parseLine(line string) (*Word, error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrInvalidRecord, len(parts))
	}

	headword := strings.TrimSpace(parts[0])
	if headword == "" {
		return nil, fmt.Errorf("%w: empty headword", ErrInvalidRecord)
	}

	offset, err := DecodeNumber(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: offset: %w", ErrInvalidRecord, err)
	}
	size, err := DecodeNumber(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: size: %w", ErrInvalidRecord, err)
	}
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("%w: size %d too large", ErrInvalidRecord, size)
	}

	return &Word{
		Word:   headword,
		Offset: offset,
		Size:   uint32(size),
	}, nil
}

// Open opens the .index file for the given dictionary base path, for example
// "/usr/share/dictd/deu-eng". Gzip compressed indexes are decompressed
// transparently.
func Open(basePath string) (io.ReadCloser, error) {
	exts := []string{".index", ".INDEX", ".index.gz", ".INDEX.gz", ".INDEX.GZ"}

	var lastErr error
	for _, ext := range exts {
		path := basePath + ext
		f, err := os.Open(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("opening %q: %w", path, err)
			}
			lastErr = err
			continue
		}

		if !strings.HasSuffix(strings.ToLower(ext), ".gz") {
			return f, nil
		}
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		return &gzipFile{Reader: z, f: f}, nil
	}

	return nil, fmt.Errorf("opening index %q: %w", basePath, lastErr)
}

// gzipFile closes both the gzip stream and the file under it.
type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zErr := g.Reader.Close()
	fErr := g.f.Close()
	return errors.Join(zErr, fErr)
}
