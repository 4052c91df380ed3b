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

package dict_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-woerterbuch/dict"
	"github.com/ianlewis/go-woerterbuch/idx"
	"github.com/ianlewis/go-woerterbuch/internal/testutil"
)

var testEntries = []testutil.Entry{
	{Headword: "Apfel", Text: "Apfel /ˈapfl̩/ <masc, n, sg>\napple"},
	{Headword: "Haus", Text: "Haus /haʊ̯s/ <neut, n, sg>\nhouse; home"},
	{Headword: "Mutter", Text: "Mutter /ˈmʊtɐ/ <fem, n, sg>\nmother"},
}

func TestWord_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     bool
		data     string
		expected string
	}{
		{
			name:     "plain text keeps tags",
			data:     "Apfel <masc>\napple",
			expected: "Apfel <masc>\napple",
		},
		{
			name:     "html rendered",
			html:     true,
			data:     "<html><body><b>Apfel</b></body></html>",
			expected: "Apfel",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, words := testutil.MakeDict([]testutil.Entry{{Headword: "x", Text: test.data}})
			d, err := dict.New(bytes.NewReader([]byte(test.data)), false, &dict.Options{HTML: test.html})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			w, err := d.Word(words[0])
			if err != nil {
				t.Fatalf("Word: %v", err)
			}
			if diff := cmp.Diff(test.expected, w.String()); diff != "" {
				t.Errorf("String (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	for _, dictZip := range []bool{false, true} {
		name := "plain"
		if dictZip {
			name = "dictzip"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			base := testutil.MakeArchive(t, t.TempDir(), "deu-eng", testEntries, &testutil.MakeArchiveOptions{
				DictZip: dictZip,
			})
			_, words := testutil.MakeDict(testEntries)

			d, err := dict.Open(base, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer d.Close()

			// Read out of order to exercise random access.
			for _, i := range []int{2, 0, 1} {
				w, err := d.Word(words[i])
				if err != nil {
					t.Fatalf("Word(%q): %v", words[i].Word, err)
				}
				if diff := cmp.Diff(testEntries[i].Text, w.String()); diff != "" {
					t.Errorf("Word(%q) (-want, +got):\n%s", words[i].Word, diff)
				}
			}
		})
	}
}

func TestDict_concurrent(t *testing.T) {
	t.Parallel()

	base := testutil.MakeArchive(t, t.TempDir(), "deu-eng", testEntries, &testutil.MakeArchiveOptions{
		DictZip: true,
	})
	_, words := testutil.MakeDict(testEntries)

	d, err := dict.Open(base, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for n := range 30 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := d.Word(words[i])
			if err != nil {
				errs <- err
				return
			}
			if w.String() != testEntries[i].Text {
				errs <- errors.New("unexpected text for " + words[i].Word)
			}
		}(n % len(words))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestOpen_missing(t *testing.T) {
	t.Parallel()

	_, err := dict.Open(filepath.Join(t.TempDir(), "nothing"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open: got %v, want os.ErrNotExist", err)
	}
}

func TestDict_Word_outOfRange(t *testing.T) {
	t.Parallel()

	d, err := dict.New(bytes.NewReader([]byte("short")), false, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := d.Word(&idx.Word{Word: "x", Offset: 3, Size: 10}); err == nil {
		t.Fatal("Word: expected error for range past the end")
	}
}
