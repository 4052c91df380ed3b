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

package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/internal/testutil"
	"github.com/ianlewis/go-woerterbuch/langdetect"
)

var deuEng = []testutil.Entry{
	{
		Headword: "Apfel",
		Text:     "Apfel /ˈapfl̩/ <masc, n, sg>\napple\n\"Der Apfel ist rot.\" - The apple is red.\n",
	},
	{
		Headword: "Mutter",
		Text:     "Mutter /ˈmʊtɐ/ <fem, n, sg>\nmother; mum\nnut (for a screw)\n",
	},
	{
		Headword: "murmeln",
		Text:     "murmeln /ˈmʊʁml̩n/ <vi>\nto mutter; to murmur\n",
	},
	{
		Headword: "Haus",
		Text:     "Haus /haʊs/ <neut, n, sg>\nhouse; home\nDas Haus ist sehr alt: The house is very old.\n",
	},
}

var deuEngInfo = map[string]string{
	"00databaseshort": "00databaseshort\n    German-English FreeDict Dictionary\n",
	"00databaseurl":   "00databaseurl\n    https://freedict.org/\n",
}

func makeDeuEng(t *testing.T, dictzip bool) *Archive {
	t.Helper()
	base := testutil.MakeArchive(t, t.TempDir(), "deu-eng", deuEng, &testutil.MakeArchiveOptions{
		DictZip:    dictzip,
		Info:       deuEngInfo,
		ExtraIndex: "broken line\n",
	})
	a := New(base, nil)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

var ignoreRaw = cmpopts.IgnoreFields(Entry{}, "Raw")

func TestArchive_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected *Entry
	}{
		{
			name:  "exact",
			query: "Apfel",
			expected: &Entry{
				Headword:     "Apfel",
				Normalized:   "apfel",
				Translations: []string{"apple"},
				Gender:       gender.Masculine,
				WordType:     gender.Noun,
				Examples: []Example{
					{Source: "Der Apfel ist rot.", Target: "The apple is red."},
				},
				Source: langdetect.German,
				Target: langdetect.English,
			},
		},
		{
			name:  "case folded",
			query: "  mutter ",
			expected: &Entry{
				Headword:     "Mutter",
				Normalized:   "mutter",
				Translations: []string{"mother", "mum", "nut"},
				Gender:       gender.Feminine,
				WordType:     gender.Noun,
				Source:       langdetect.German,
				Target:       langdetect.English,
			},
		},
		{
			name:  "colon example",
			query: "Haus",
			expected: &Entry{
				Headword:     "Haus",
				Normalized:   "haus",
				Translations: []string{"house", "home"},
				Gender:       gender.Neuter,
				WordType:     gender.Noun,
				Examples: []Example{
					{Source: "Das Haus ist sehr alt", Target: "The house is very old."},
				},
				Source: langdetect.German,
				Target: langdetect.English,
			},
		},
		{
			name:  "verb",
			query: "murmeln",
			expected: &Entry{
				Headword:     "murmeln",
				Normalized:   "murmeln",
				Translations: []string{"to mutter", "to murmur"},
				Gender:       gender.Unknown,
				WordType:     gender.Verb,
				Source:       langdetect.German,
				Target:       langdetect.English,
			},
		},
		{
			name:     "missing",
			query:    "Zebra",
			expected: nil,
		},
	}

	for _, dictzip := range []bool{false, true} {
		a := makeDeuEng(t, dictzip)
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				t.Parallel()

				got, err := a.Lookup(context.Background(), test.query)
				if err != nil {
					t.Fatalf("Lookup: %v", err)
				}
				if diff := cmp.Diff(test.expected, got, ignoreRaw); diff != "" {
					t.Errorf("Lookup(%q) dictzip=%v (-want, +got):\n%s", test.query, dictzip, diff)
				}
			})
		}
	}
}

func TestArchive_ColonNote(t *testing.T) {
	t.Parallel()

	base := testutil.MakeArchive(t, t.TempDir(), "deu-eng", []testutil.Entry{
		{Headword: "Gericht", Text: "Gericht /ɡəˈʁɪçt/ <neut, n, sg>\ncourt; dish\nin der Umgangssprache ist die Form: eher selten und regional\n"},
	}, nil)
	a := New(base, nil)
	defer a.Close()

	got, err := a.Lookup(context.Background(), "Gericht")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got == nil || len(got.Translations) < 2 {
		t.Fatalf("Lookup: got %+v, want Gericht with translations", got)
	}
	if len(got.Examples) != 0 {
		t.Errorf("Examples: got %v, want none", got.Examples)
	}
	if diff := cmp.Diff([]string{"court", "dish"}, got.Translations[:2]); diff != "" {
		t.Errorf("Translations (-want, +got):\n%s", diff)
	}
}

func TestArchive_Len(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	if got := a.Len(); got != 0 {
		t.Errorf("Len before Init: got %d, want 0", got)
	}
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got, want := a.Len(), len(deuEng); got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if err := a.Err(); err != nil {
		t.Errorf("Err: %v", err)
	}
}

func TestArchive_Suggest(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, false)
	ctx := context.Background()

	if diff := cmp.Diff([]string{"Mutter", "murmeln"}, a.Suggest(ctx, "M", 10)); diff != "" {
		t.Errorf("Suggest(M) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Mutter"}, a.Suggest(ctx, "mu", 1)); diff != "" {
		t.Errorf("Suggest(mu, 1) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{}, a.Suggest(ctx, "x", 10)); diff != "" {
		t.Errorf("Suggest(x) (-want, +got):\n%s", diff)
	}
}

func TestArchive_Walk(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	ctx := context.Background()

	var got []string
	if err := a.Walk(ctx, func(e *Entry) error {
		got = append(got, e.Headword)
		return nil
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if diff := cmp.Diff([]string{"Apfel", "Mutter", "murmeln", "Haus"}, got); diff != "" {
		t.Errorf("Walk (-want, +got):\n%s", diff)
	}

	errStop := errors.New("stop")
	var n int
	err := a.Walk(ctx, func(*Entry) error {
		n++
		return errStop
	})
	if diff := cmp.Diff(errStop, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Walk error (-want, +got):\n%s", diff)
	}
	if n != 1 {
		t.Errorf("Walk calls after error: got %d, want 1", n)
	}
}

func TestArchive_Headwords(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	ctx := context.Background()

	var got []string
	if err := a.Headwords(ctx, func(w string) error {
		got = append(got, w)
		return nil
	}); err != nil {
		t.Fatalf("Headwords: %v", err)
	}
	if diff := cmp.Diff([]string{"Apfel", "Mutter", "murmeln", "Haus"}, got); diff != "" {
		t.Errorf("Headwords (-want, +got):\n%s", diff)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	err := a.Headwords(cctx, func(string) error { return nil })
	if diff := cmp.Diff(context.Canceled, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Headwords canceled (-want, +got):\n%s", diff)
	}
}

func TestArchive_LookupByTranslation(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	ctx := context.Background()

	tests := []struct {
		query     string
		headwords []string
	}{
		{query: "mother", headwords: []string{"Mutter"}},
		{query: "mutter", headwords: []string{"murmeln"}},
		{query: "Home", headwords: []string{"Haus"}},
		{query: "zebra", headwords: nil},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			t.Parallel()

			entries, err := a.LookupByTranslation(ctx, test.query, 10)
			if err != nil {
				t.Fatalf("LookupByTranslation: %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Headword)
			}
			if diff := cmp.Diff(test.headwords, got); diff != "" {
				t.Errorf("LookupByTranslation(%q) (-want, +got):\n%s", test.query, diff)
			}
		})
	}
}

func TestArchive_Info(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	got, err := a.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	want := Info{
		Short: "German-English FreeDict Dictionary",
		URL:   "https://freedict.org/",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Info (-want, +got):\n%s", diff)
	}
}

func TestArchive_Unavailable(t *testing.T) {
	t.Parallel()

	a := New(filepath.Join(t.TempDir(), "deu-eng"), nil)
	ctx := context.Background()

	got, err := a.Lookup(ctx, "Apfel")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != nil {
		t.Errorf("Lookup: got %+v, want nil", got)
	}
	if diff := cmp.Diff(ErrUnavailable, a.Err(), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Err (-want, +got):\n%s", diff)
	}
	if got := a.Len(); got != 0 {
		t.Errorf("Len: got %d, want 0", got)
	}
	if diff := cmp.Diff([]string{}, a.Suggest(ctx, "A", 10)); diff != "" {
		t.Errorf("Suggest (-want, +got):\n%s", diff)
	}
}

func TestArchive_Closed(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, true)
	ctx := context.Background()
	if err := a.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := a.Lookup(ctx, "Apfel"); !errors.Is(err, ErrClosed) {
		t.Errorf("Lookup after Close: got %v, want %v", err, ErrClosed)
	}
}

func TestArchive_InitCancelled(t *testing.T) {
	t.Parallel()

	a := makeDeuEng(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if diff := cmp.Diff(context.Canceled, a.Init(ctx), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Init (-want, +got):\n%s", diff)
	}

	// A cancelled call does not prevent a later load.
	got, err := a.Lookup(context.Background(), "Apfel")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got == nil || got.Headword != "Apfel" {
		t.Errorf("Lookup: got %+v, want Apfel", got)
	}
}

func TestArchive_EnglishSource(t *testing.T) {
	t.Parallel()

	base := testutil.MakeArchive(t, t.TempDir(), "eng-deu", []testutil.Entry{
		{Headword: "mother", Text: "mother /ˈmʌðə/ <n>\nMutter {f}\nMama {f}\n"},
		{Headword: "café", Text: "café <n>\nCafé {n}\n"},
	}, nil)
	a := New(base, &Options{Source: langdetect.English, Target: langdetect.German})
	defer a.Close()

	got, err := a.Lookup(context.Background(), "Mother")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := &Entry{
		Headword:     "mother",
		Normalized:   "mother",
		Translations: []string{"Mutter", "Mama"},
		WordType:     gender.Noun,
		Source:       langdetect.English,
		Target:       langdetect.German,
	}
	if diff := cmp.Diff(want, got, ignoreRaw); diff != "" {
		t.Errorf("Lookup (-want, +got):\n%s", diff)
	}

	// English keys have diacritics removed.
	cafe, err := a.Lookup(context.Background(), "cafe")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cafe == nil || cafe.Headword != "café" {
		t.Errorf("Lookup(cafe): got %+v, want café", cafe)
	}
}
