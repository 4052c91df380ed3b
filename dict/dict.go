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

// Package dict implements reading dictd .dict and .dict.dz files. Entries are
// read by byte range so that only the addressed part of a dictzip payload is
// decompressed.
package dict

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/ianlewis/go-dictzip"
	"github.com/k3a/html2text"

	"github.com/ianlewis/go-woerterbuch/idx"
)

var (
	// ErrNotReaderAt indicates an uncompressed payload that does not support
	// random access.
	ErrNotReaderAt = errors.New("reader does not implement io.ReaderAt")

	errWordOffsetTooLarge = errors.New("word offset too large")
)

// Options are options for reading a payload.
type Options struct {
	// HTML indicates that entries are HTML documents. Their text is rendered
	// to plain text by Word.String.
	HTML bool
}

// DefaultOptions are the default payload options.
var DefaultOptions = &Options{}

// Dict is a dictd dictionary payload.
type Dict struct {
	// mu serializes reads from a dictzip reader, which seeks internally.
	mu     sync.Mutex
	locked bool

	r    io.ReaderAt
	c    io.Closer
	html bool
}

// Word is the raw data of one dictionary entry.
type Word struct {
	Data []byte
	html bool
}

// String returns the entry text. HTML entries are rendered to plain text.
func (w *Word) String() string {
	if w.html {
		return html2text.HTML2Text(string(w.Data))
	}
	return string(w.Data)
}

// New returns a new Dict reading from r. When compressed is true r is read as
// a dictzip file. Dict takes ownership of r if it is an io.Closer.
func New(r io.ReadSeeker, compressed bool, options *Options) (*Dict, error) {
	if options == nil {
		options = DefaultOptions
	}

	d := &Dict{html: options.HTML}
	if c, ok := r.(io.Closer); ok {
		d.c = c
	}

	if compressed {
		z, err := dictzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("reading dictzip header: %w", err)
		}
		d.r = z
		d.locked = true
		return d, nil
	}

	ra, ok := r.(io.ReaderAt)
	if !ok {
		return nil, ErrNotReaderAt
	}
	d.r = ra
	return d, nil
}

// Open opens the payload for the dictionary base path, for example
// "/usr/share/dictd/deu-eng". Compressed payloads are preferred.
func Open(basePath string, options *Options) (*Dict, error) {
	exts := []string{".dict.dz", ".DICT.DZ", ".DICT.dz", ".dict", ".DICT"}

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

		d, err := New(f, strings.HasSuffix(strings.ToLower(ext), ".dz"), options)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		return d, nil
	}

	return nil, fmt.Errorf("opening dict %q: %w", basePath, lastErr)
}

// Word retrieves the entry for the given index record.
func (d *Dict) Word(e *idx.Word) (*Word, error) {
	if e.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", errWordOffsetTooLarge, e.Offset)
	}

	b := make([]byte, e.Size)
	if d.locked {
		d.mu.Lock()
		defer d.mu.Unlock()
	}
	//nolint:gosec // offset size is bounds checked above.
	n, err := d.r.ReadAt(b, int64(e.Offset))
	// ReadAt may return io.EOF together with a full read at the end of the
	// payload.
	if err != nil && !(errors.Is(err, io.EOF) && n == len(b)) {
		return nil, fmt.Errorf("reading %q: %w", e.Word, err)
	}

	return &Word{
		Data: b,
		html: d.html,
	}, nil
}

// Close closes the underlying file.
func (d *Dict) Close() error {
	if d.c == nil {
		return nil
	}
	if err := d.c.Close(); err != nil {
		return fmt.Errorf("closing dict: %w", err)
	}
	return nil
}
