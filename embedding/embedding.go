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

// Package embedding implements approximate semantic similarity search over
// dictionary entries.
//
// Text is turned into fixed size, L2 normalized vectors by an Embedder.
// Two embedders exist: a static token table loaded from a model file, and a
// deterministic hashing embedder used when no model is available. Vectors
// are only comparable when they come from the same Embedder, as identified
// by its Model.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Dimensions is the default vector size.
const Dimensions = 384

// ErrEmptyText is returned when embedding blank text.
var ErrEmptyText = errors.New("empty text")

// Vector is an embedding vector.
type Vector []float32

// Embedding is a vector owned by a dictionary entry.
type Embedding struct {
	// ID identifies the owning entry.
	ID     string
	Vector Vector
}

// Embedder turns text into vectors.
type Embedder interface {
	// Embed returns the normalized vector for text.
	Embed(ctx context.Context, text string) (Vector, error)

	// Dimensions returns the size of the vectors.
	Dimensions() int

	// Model identifies the generator. Vectors with different models must
	// not be compared.
	Model() string
}

// Options are options for New.
type Options struct {
	// Logger is the logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// New returns an Embedder backed by the static model at path. If path is
// empty or the model cannot be loaded, the hashing embedder is returned
// instead.
func New(path string, opts *Options) Embedder {
	log := slog.Default()
	if opts != nil && opts.Logger != nil {
		log = opts.Logger
	}
	log = log.With("component", "embedding")

	if path == "" {
		log.Debug("no model configured, using hashing embedder")
		return NewHashing(Dimensions)
	}

	m, err := loadStaticModelFile(path)
	if err != nil {
		log.Warn("loading model failed, using hashing embedder",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return NewHashing(Dimensions)
	}
	log.Debug("model loaded",
		slog.String("model", m.Model()),
		slog.Int("tokens", m.Len()),
	)
	return m
}

// IsFallback reports whether e is the hashing embedder.
func IsFallback(e Embedder) bool {
	_, ok := e.(*Hashing)
	return ok
}

func loadStaticModelFile(path string) (*StaticModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()
	return LoadStaticModel(f)
}
