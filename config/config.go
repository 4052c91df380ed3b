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

// Package config loads dictionary configuration from a YAML file and the
// environment.
package config

import (
	"time"
)

// Config is the full configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Log       LogConfig       `yaml:"log"`
	Search    SearchConfig    `yaml:"search"`
	Gender    GenderConfig    `yaml:"gender"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// DataConfig locates the dictionary archives.
type DataConfig struct {
	// Dir holds the deu-eng and eng-deu archives. Empty means the
	// platform data directory.
	Dir string `yaml:"dir" env:"WB_DATA_DIR"`

	MaxTranslations int `yaml:"max_translations" env:"WB_MAX_TRANSLATIONS" env-default:"16"`
	MaxExamples     int `yaml:"max_examples"     env:"WB_MAX_EXAMPLES"     env-default:"5"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WB_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"WB_LOG_FORMAT" env-default:"text"`
}

// SearchConfig configures the search orchestrator.
type SearchConfig struct {
	CacheSize       int           `yaml:"cache_size"       env:"WB_CACHE_SIZE"       env-default:"256"`
	CacheTTL        time.Duration `yaml:"cache_ttl"        env:"WB_CACHE_TTL"        env-default:"10m"`
	DisableFallback bool          `yaml:"disable_fallback" env:"WB_DISABLE_FALLBACK"`
	FallbackTimeout time.Duration `yaml:"fallback_timeout" env:"WB_FALLBACK_TIMEOUT" env-default:"2s"`
	GenderThreshold float64       `yaml:"gender_threshold" env:"WB_GENDER_THRESHOLD" env-default:"0.70"`
	RelatedLimit    int           `yaml:"related_limit"    env:"WB_RELATED_LIMIT"    env-default:"5"`
	ReverseLimit    int           `yaml:"reverse_limit"    env:"WB_REVERSE_LIMIT"    env-default:"10"`
}

// GenderConfig holds the confidences assigned by the gender classifier.
type GenderConfig struct {
	CompoundConfidence       float64 `yaml:"compound_confidence"        env:"WB_GENDER_COMPOUND"        env-default:"0.85"`
	CompoundNeuterConfidence float64 `yaml:"compound_neuter_confidence" env:"WB_GENDER_COMPOUND_NEUTER" env-default:"0.70"`
	VeryHighConfidence       float64 `yaml:"very_high_confidence"       env:"WB_GENDER_VERY_HIGH"       env-default:"0.95"`
	HighConfidence           float64 `yaml:"high_confidence"            env:"WB_GENDER_HIGH"            env-default:"0.85"`
	MediumConfidence         float64 `yaml:"medium_confidence"          env:"WB_GENDER_MEDIUM"          env-default:"0.70"`
	KeywordConfidence        float64 `yaml:"keyword_confidence"         env:"WB_GENDER_KEYWORD"         env-default:"0.70"`
	MinConfidence            float64 `yaml:"min_confidence"             env:"WB_GENDER_MIN"             env-default:"0"`
}

// EmbeddingConfig configures related-word search. Related words are only
// searched when Store is set.
type EmbeddingConfig struct {
	// Model is a static embedding model file. Empty selects the hashing
	// embedder.
	Model string `yaml:"model" env:"WB_EMBEDDING_MODEL"`

	// Store is the SQLite database holding the headword vectors.
	Store string `yaml:"store" env:"WB_EMBEDDING_STORE"`

	MinSimilarity float64 `yaml:"min_similarity" env:"WB_EMBEDDING_MIN_SIMILARITY" env-default:"0.5"`
	StopAbove     float64 `yaml:"stop_above"     env:"WB_EMBEDDING_STOP_ABOVE"     env-default:"0.75"`
	PageSize      int     `yaml:"page_size"      env:"WB_EMBEDDING_PAGE_SIZE"      env-default:"1000"`
}
