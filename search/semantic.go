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

package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ianlewis/go-woerterbuch/embedding"
)

// Ranker finds words related to a query. Hit IDs are German headwords.
type Ranker interface {
	Related(ctx context.Context, query string, limit int) ([]embedding.Hit, error)
}

// Semantic is a Ranker backed by an embedding source.
type Semantic struct {
	embedder embedding.Embedder
	source   embedding.Source
	opts     embedding.TopKOptions
}

// NewSemantic returns a Ranker that embeds queries with e and searches src.
// The vectors in src must come from e.
func NewSemantic(e embedding.Embedder, src embedding.Source, opts *embedding.TopKOptions) *Semantic {
	if opts == nil {
		opts = embedding.DefaultTopKOptions
	}
	return &Semantic{
		embedder: e,
		source:   src,
		opts:     *opts,
	}
}

// Related implements Ranker.
func (s *Semantic) Related(ctx context.Context, query string, limit int) ([]embedding.Hit, error) {
	v, err := s.embedder.Embed(ctx, query)
	if errors.Is(err, embedding.ErrEmptyText) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	opts := s.opts
	opts.K = limit
	return embedding.TopK(ctx, v, s.source, &opts)
}

// related appends words related to q after the exact groups.
func (o *Orchestrator) related(ctx context.Context, q string, groups []*Group) []*Group {
	hits, err := o.opts.Ranker.Related(ctx, q, o.opts.RelatedLimit+len(groups))
	if err != nil {
		o.log.WarnContext(ctx, "related search failed", slog.String("query", q), slog.Any("error", err))
		return groups
	}

	byID := make(map[string]*Group, len(groups))
	byKey := make(map[string]bool, len(groups))
	exact := make([]string, 0, len(groups))
	for _, g := range groups {
		byID[g.Headword] = g
		byKey[g.Key()] = true
		exact = append(exact, g.Headword)
	}

	out := make([]*Group, 0, len(groups)+o.opts.RelatedLimit)
	var added int
	for _, r := range embedding.Hybrid(exact, hits, len(groups)+len(hits)) {
		if r.Exact {
			out = append(out, byID[r.ID])
			continue
		}
		if added == o.opts.RelatedLimit {
			continue
		}
		g := &Group{Headword: r.ID}
		if byKey[g.Key()] {
			continue
		}
		if e := o.lookup(ctx, o.opts.German, r.ID); e != nil {
			g = o.entryGroup(e)
		}
		g.Score = r.Score
		g.Related = true
		byKey[g.Key()] = true
		out = append(out, g)
		added++
	}
	return out
}
