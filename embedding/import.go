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
	"errors"
	"fmt"
)

const importBatch = 500

// Document is text to embed, owned by an entry.
type Document struct {
	ID   string
	Text string
}

// Import embeds docs and stores the vectors. Documents with blank text are
// skipped. It returns the number of stored embeddings.
func Import(ctx context.Context, e Embedder, s *Store, docs []Document) (int, error) {
	if e.Model() != s.Model() {
		return 0, fmt.Errorf("embedder model %q does not match store model %q", e.Model(), s.Model())
	}

	var n int
	batch := make([]Embedding, 0, importBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.Put(ctx, batch...); err != nil {
			return err
		}
		n += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		v, err := e.Embed(ctx, d.Text)
		if errors.Is(err, ErrEmptyText) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("embedding %q: %w", d.ID, err)
		}
		batch = append(batch, Embedding{ID: d.ID, Vector: v})
		if len(batch) == importBatch {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if err := flush(); err != nil {
		return n, err
	}
	return n, nil
}
