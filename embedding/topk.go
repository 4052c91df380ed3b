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
	"sort"
)

// Hit is a similarity search result.
type Hit struct {
	ID         string
	Similarity float64
}

// Source is a paged collection of embeddings.
type Source interface {
	// Page returns up to limit embeddings starting at offset. A short or
	// empty page means the end of the collection.
	Page(ctx context.Context, offset, limit int) ([]Embedding, error)

	// Len returns the number of embeddings.
	Len(ctx context.Context) (int, error)
}

// TopKOptions are options for TopK.
type TopKOptions struct {
	// K is the maximum number of hits.
	K int

	// PageSize is the number of embeddings scanned per page.
	PageSize int

	// MinSimilarity drops hits below this similarity.
	MinSimilarity float64

	// StopAbove ends the scan early once K hits at or above this similarity
	// have been found. Zero disables early termination.
	StopAbove float64
}

// DefaultTopKOptions is the default options for TopK.
var DefaultTopKOptions = &TopKOptions{
	K:             10,
	PageSize:      1000,
	MinSimilarity: 0.5,
	StopAbove:     0.75,
}

// TopK returns the hits in src most similar to query, best first. The
// context is checked before each page.
func TopK(ctx context.Context, query Vector, src Source, opts *TopKOptions) ([]Hit, error) {
	if opts == nil {
		opts = DefaultTopKOptions
	}
	k := opts.K
	if k <= 0 {
		k = DefaultTopKOptions.K
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultTopKOptions.PageSize
	}

	var hits []Hit
	var strong int
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := src.Page(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		for _, e := range page {
			sim := Cosine(query, e.Vector)
			if sim < opts.MinSimilarity {
				continue
			}
			hits = append(hits, Hit{ID: e.ID, Similarity: sim})
			if opts.StopAbove > 0 && sim >= opts.StopAbove {
				strong++
			}
		}
		if len(page) < pageSize || (opts.StopAbove > 0 && strong >= k) {
			break
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// MemorySource is an in-memory Source.
type MemorySource []Embedding

// Page implements Source.
func (m MemorySource) Page(_ context.Context, offset, limit int) ([]Embedding, error) {
	if offset >= len(m) {
		return nil, nil
	}
	end := min(offset+limit, len(m))
	return m[offset:end], nil
}

// Len implements Source.
func (m MemorySource) Len(_ context.Context) (int, error) {
	return len(m), nil
}
