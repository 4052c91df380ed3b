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
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/ianlewis/go-woerterbuch/internal/folding"
)

const (
	ngramSize   = 3
	ngramWeight = 1
	wordWeight  = 2
)

// Hashing embeds text by hashing character trigrams and words into buckets.
// It needs no model and is deterministic, but only captures surface
// similarity.
type Hashing struct {
	dims int
}

// NewHashing returns a hashing embedder producing vectors of the given size.
func NewHashing(dims int) *Hashing {
	if dims <= 0 {
		dims = Dimensions
	}
	return &Hashing{dims: dims}
}

// Dimensions implements Embedder.
func (h *Hashing) Dimensions() int {
	return h.dims
}

// Model implements Embedder.
func (h *Hashing) Model() string {
	return fmt.Sprintf("hashing-fnv1a-%d", h.dims)
}

// Embed implements Embedder.
func (h *Hashing) Embed(ctx context.Context, text string) (Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalized := folding.String(folding.German, text)
	if normalized == "" {
		return nil, ErrEmptyText
	}

	v := make(Vector, h.dims)
	runes := []rune(normalized)
	if len(runes) < ngramSize {
		v[h.bucket(normalized)] += ngramWeight
	} else {
		for i := 0; i+ngramSize <= len(runes); i++ {
			v[h.bucket(string(runes[i:i+ngramSize]))] += ngramWeight
		}
	}
	for _, w := range strings.Fields(normalized) {
		v[h.bucket(w)] += wordWeight
	}
	return Normalize(v), nil
}

func (h *Hashing) bucket(s string) int {
	f := fnv.New32a()
	_, _ = f.Write([]byte(s))
	return int(f.Sum32() % uint32(h.dims))
}
