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

package embedding

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var corpus = MemorySource{
	{ID: "c", Vector: Vector{0, 1}},
	{ID: "a", Vector: Vector{1, 0}},
	{ID: "b", Vector: Vector{0.8, 0.6}},
	{ID: "d", Vector: Vector{0.6, 0.8}},
}

// countingSource counts the pages read.
type countingSource struct {
	Source
	pages int
}

func (c *countingSource) Page(ctx context.Context, offset, limit int) ([]Embedding, error) {
	c.pages++
	return c.Source.Page(ctx, offset, limit)
}

func TestTopK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *TopKOptions
		expected []Hit
	}{
		{
			name: "default",
			opts: nil,
			expected: []Hit{
				{ID: "a", Similarity: 1},
				{ID: "b", Similarity: 0.8},
				{ID: "d", Similarity: 0.6},
			},
		},
		{
			name: "k",
			opts: &TopKOptions{K: 2, PageSize: 3, MinSimilarity: 0.5},
			expected: []Hit{
				{ID: "a", Similarity: 1},
				{ID: "b", Similarity: 0.8},
			},
		},
		{
			name: "min similarity",
			opts: &TopKOptions{K: 10, PageSize: 2, MinSimilarity: 0.7},
			expected: []Hit{
				{ID: "a", Similarity: 1},
				{ID: "b", Similarity: 0.8},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := TopK(context.Background(), Vector{1, 0}, corpus, test.opts)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			if diff := cmp.Diff(test.expected, got, approx); diff != "" {
				t.Errorf("TopK (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTopK_EarlyStop(t *testing.T) {
	t.Parallel()

	src := &countingSource{Source: corpus}
	got, err := TopK(context.Background(), Vector{1, 0}, src, &TopKOptions{
		K:             1,
		PageSize:      2,
		MinSimilarity: 0.5,
		StopAbove:     0.75,
	})
	if err != nil {
		t.Fatalf("TopK: %v", err)
	}
	if diff := cmp.Diff([]Hit{{ID: "a", Similarity: 1}}, got, approx); diff != "" {
		t.Errorf("TopK (-want, +got):\n%s", diff)
	}
	if got, want := src.pages, 1; got != want {
		t.Errorf("pages: got %d, want %d", got, want)
	}
}

func TestTopK_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TopK(ctx, Vector{1, 0}, corpus, nil)
	if diff := cmp.Diff(context.Canceled, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("TopK (-want, +got):\n%s", diff)
	}
}

func TestHybrid(t *testing.T) {
	t.Parallel()

	got := Hybrid(
		[]string{"Haus", "Haus"},
		[]Hit{
			{ID: "Haus", Similarity: 0.9},
			{ID: "Hütte", Similarity: 0.5},
			{ID: "Heim", Similarity: 0.8},
		},
		3,
	)
	want := []Ranked{
		{ID: "Haus", Score: 1, Exact: true},
		{ID: "Heim", Score: 0.84},
		{ID: "Hütte", Score: 0.75},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Hybrid (-want, +got):\n%s", diff)
	}

	if got := Hybrid(nil, nil, 5); len(got) != 0 {
		t.Errorf("Hybrid(nil): got %v, want empty", got)
	}
	if got := Hybrid([]string{"a", "b", "c"}, nil, 2); len(got) != 2 {
		t.Errorf("Hybrid limit: got %d items, want 2", len(got))
	}
}

func openStore(t *testing.T, path, model string, dims int) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), path, model, dims)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "vectors.db")
	s := openStore(t, path, "m1", 2)

	if err := s.Put(ctx, corpus...); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Replacing an existing ID does not add a row.
	if err := s.Put(ctx, Embedding{ID: "a", Vector: Vector{1, 0}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n, err := s.Len(ctx)
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if got, want := n, len(corpus); got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}

	page, err := s.Page(ctx, 0, 3)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	var ids []string
	for _, e := range page {
		ids = append(ids, e.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("Page ids (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Vector{0.8, 0.6}, page[1].Vector); diff != "" {
		t.Errorf("Page vector (-want, +got):\n%s", diff)
	}

	hits, err := TopK(ctx, Vector{1, 0}, s, &TopKOptions{K: 2, PageSize: 2, MinSimilarity: 0.5})
	if err != nil {
		t.Fatalf("TopK: %v", err)
	}
	if diff := cmp.Diff([]Hit{{ID: "a", Similarity: 1}, {ID: "b", Similarity: 0.8}}, hits, approx); diff != "" {
		t.Errorf("TopK (-want, +got):\n%s", diff)
	}

	err = s.Put(ctx, Embedding{ID: "x", Vector: Vector{1, 0, 0}})
	if diff := cmp.Diff(ErrDimensions, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Put mismatch (-want, +got):\n%s", diff)
	}
}

func TestStore_ModelIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	s1 := openStore(t, path, "m1", 2)
	if err := s1.Put(ctx, corpus...); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := openStore(t, path, "m2", 2)
	n, err := s2.Len(ctx)
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 0 {
		t.Errorf("Len(m2): got %d, want 0", n)
	}
}

func TestImport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := NewHashing(Dimensions)
	s := openStore(t, filepath.Join(t.TempDir(), "vectors.db"), h.Model(), h.Dimensions())

	n, err := Import(ctx, h, s, []Document{
		{ID: "Haus", Text: "Haus house home"},
		{ID: "blank", Text: "  "},
		{ID: "Baum", Text: "Baum tree"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got, want := n, 2; got != want {
		t.Errorf("Import: got %d, want %d", got, want)
	}

	q, err := h.Embed(ctx, "Haus house home")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	hits, err := TopK(ctx, q, s, &TopKOptions{K: 1, MinSimilarity: 0.5})
	if err != nil {
		t.Fatalf("TopK: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "Haus" {
		t.Errorf("TopK: got %+v, want Haus", hits)
	}

	other := openStore(t, filepath.Join(t.TempDir(), "other.db"), "other", Dimensions)
	if _, err := Import(ctx, h, other, nil); err == nil {
		t.Errorf("Import with mismatched model: got nil error")
	}
}
