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

package woerterbuch

import (
	"log/slog"

	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/config"
	"github.com/ianlewis/go-woerterbuch/embedding"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/markup"
	"github.com/ianlewis/go-woerterbuch/search"
)

// Options are options for Open.
type Options struct {
	// HTML indicates that entry text is HTML.
	HTML bool

	// MaxTranslations is the maximum number of translations per entry.
	MaxTranslations int

	// MaxExamples is the maximum number of examples per entry.
	MaxExamples int

	// Detector are the language detector word lists.
	Detector *langdetect.Options

	// Gender are the gender classifier options.
	Gender *gender.Options

	// Markup are the wiki text parser options.
	Markup *markup.Options

	// Search are the search options. The archives, detector, classifier,
	// fallback and ranker are set by Open.
	Search *search.Options

	// DisableFallback turns off the built-in common word table.
	DisableFallback bool

	// EmbeddingModel is a static embedding model file. Empty selects the
	// hashing embedder.
	EmbeddingModel string

	// EmbeddingStore is the SQLite database of headword vectors. Similarity
	// search is off when it is empty.
	EmbeddingStore string

	// TopK are the similarity search options.
	TopK *embedding.TopKOptions

	// Logger is the logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default options.
var DefaultOptions = &Options{
	MaxTranslations: archive.DefaultOptions.MaxTranslations,
	MaxExamples:     archive.DefaultOptions.MaxExamples,
}

// OptionsFromConfig returns the options described by cfg.
func OptionsFromConfig(cfg *config.Config, log *slog.Logger) *Options {
	g := *gender.DefaultOptions
	g.CompoundConfidence = cfg.Gender.CompoundConfidence
	g.CompoundNeuterConfidence = cfg.Gender.CompoundNeuterConfidence
	g.VeryHighConfidence = cfg.Gender.VeryHighConfidence
	g.HighConfidence = cfg.Gender.HighConfidence
	g.MediumConfidence = cfg.Gender.MediumConfidence
	g.KeywordConfidence = cfg.Gender.KeywordConfidence
	g.MinConfidence = cfg.Gender.MinConfidence

	s := *search.DefaultOptions
	s.CacheSize = cfg.Search.CacheSize
	s.CacheTTL = cfg.Search.CacheTTL
	s.FallbackTimeout = cfg.Search.FallbackTimeout
	s.GenderThreshold = cfg.Search.GenderThreshold
	s.RelatedLimit = cfg.Search.RelatedLimit
	s.ReverseLimit = cfg.Search.ReverseLimit

	k := *embedding.DefaultTopKOptions
	k.MinSimilarity = cfg.Embedding.MinSimilarity
	k.StopAbove = cfg.Embedding.StopAbove
	k.PageSize = cfg.Embedding.PageSize

	return &Options{
		MaxTranslations: cfg.Data.MaxTranslations,
		MaxExamples:     cfg.Data.MaxExamples,
		Gender:          &g,
		Search:          &s,
		DisableFallback: cfg.Search.DisableFallback,
		EmbeddingModel:  cfg.Embedding.Model,
		EmbeddingStore:  cfg.Embedding.Store,
		TopK:            &k,
		Logger:          log,
	}
}
