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

package config

import (
	"fmt"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Data.validate(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Gender.validate(); err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	if err := c.Embedding.validate(); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}
	return nil
}

func (d *DataConfig) validate() error {
	if d.MaxTranslations <= 0 {
		return fmt.Errorf("max_translations must be > 0 (got %d)", d.MaxTranslations)
	}
	if d.MaxExamples < 0 {
		return fmt.Errorf("max_examples must be >= 0 (got %d)", d.MaxExamples)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (s *SearchConfig) validate() error {
	if s.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0 (got %d)", s.CacheSize)
	}
	if s.CacheSize > 0 && s.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", s.CacheTTL)
	}
	if s.FallbackTimeout <= 0 {
		return fmt.Errorf("fallback_timeout must be > 0 (got %v)", s.FallbackTimeout)
	}
	if err := unit("gender_threshold", s.GenderThreshold); err != nil {
		return err
	}
	if s.RelatedLimit < 0 {
		return fmt.Errorf("related_limit must be >= 0 (got %d)", s.RelatedLimit)
	}
	if s.ReverseLimit <= 0 {
		return fmt.Errorf("reverse_limit must be > 0 (got %d)", s.ReverseLimit)
	}
	return nil
}

func (g *GenderConfig) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"compound_confidence", g.CompoundConfidence},
		{"compound_neuter_confidence", g.CompoundNeuterConfidence},
		{"very_high_confidence", g.VeryHighConfidence},
		{"high_confidence", g.HighConfidence},
		{"medium_confidence", g.MediumConfidence},
		{"keyword_confidence", g.KeywordConfidence},
		{"min_confidence", g.MinConfidence},
	} {
		if err := unit(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (e *EmbeddingConfig) validate() error {
	if err := unit("min_similarity", e.MinSimilarity); err != nil {
		return err
	}
	if err := unit("stop_above", e.StopAbove); err != nil {
		return err
	}
	if e.StopAbove < e.MinSimilarity {
		return fmt.Errorf("stop_above must be >= min_similarity (got %v < %v)", e.StopAbove, e.MinSimilarity)
	}
	if e.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0 (got %d)", e.PageSize)
	}
	return nil
}

// unit checks that v is in [0, 1].
func unit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be between 0 and 1 (got %v)", name, v)
	}
	return nil
}
