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
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    string
		expected []*Word
		skipped  int
	}{
		{
			name:  "well formed",
			index: "Apfel\tA\tM\nguten Tag\tM\tBA\n",
			expected: []*Word{
				{Word: "Apfel", Offset: 0, Size: 12},
				{Word: "guten Tag", Offset: 12, Size: 64},
			},
		},
		{
			name:  "crlf and blank lines",
			index: "Apfel\tA\tM\r\n\r\nHaus\tM\tK\r\n",
			expected: []*Word{
				{Word: "Apfel", Offset: 0, Size: 12},
				{Word: "Haus", Offset: 12, Size: 10},
			},
		},
		{
			name:  "malformed records skipped",
			index: "Apfel\tA\tM\nbroken\tA\n\tA\tB\nbad\t!\tB\nHaus\tM\tK\n",
			expected: []*Word{
				{Word: "Apfel", Offset: 0, Size: 12},
				{Word: "Haus", Offset: 12, Size: 10},
			},
			skipped: 3,
		},
		{
			name:  "no trailing newline",
			index: "Apfel\tA\tM",
			expected: []*Word{
				{Word: "Apfel", Offset: 0, Size: 12},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := NewScanner(io.NopCloser(strings.NewReader(test.index)), nil)
			defer s.Close()

			var words []*Word
			for s.Scan() {
				words = append(words, s.Word())
			}
			if err := s.Err(); err != nil {
				t.Fatalf("Err: %v", err)
			}

			if diff := cmp.Diff(test.expected, words); diff != "" {
				t.Errorf("words (-want, +got):\n%s", diff)
			}
			if got := len(s.Skipped()); got != test.skipped {
				t.Errorf("Skipped: got %d, want %d", got, test.skipped)
			}
			for _, err := range s.Skipped() {
				if !errors.Is(err, ErrInvalidRecord) {
					t.Errorf("skipped error %v is not ErrInvalidRecord", err)
				}
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		base := filepath.Join(dir, "deu-eng")
		if err := os.WriteFile(base+".index", []byte("Apfel\tA\tM\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		r, err := Open(base)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer r.Close()

		b, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff("Apfel\tA\tM\n", string(b)); diff != "" {
			t.Errorf("contents (-want, +got):\n%s", diff)
		}
	})

	t.Run("gzip", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		base := filepath.Join(dir, "deu-eng")
		f, err := os.Create(base + ".index.gz")
		if err != nil {
			t.Fatal(err)
		}
		z := gzip.NewWriter(f)
		if _, err := z.Write([]byte("Haus\tA\tK\n")); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		r, err := Open(base)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		s := NewScanner(r, nil)
		defer s.Close()

		if !s.Scan() {
			t.Fatalf("Scan: no record, err: %v", s.Err())
		}
		if diff := cmp.Diff(&Word{Word: "Haus", Offset: 0, Size: 10}, s.Word()); diff != "" {
			t.Errorf("Word (-want, +got):\n%s", diff)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "nothing"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Open: got %v, want os.ErrNotExist", err)
		}
	})
}
