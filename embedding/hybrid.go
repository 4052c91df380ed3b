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

import "sort"

const (
	exactScore        = 1.0
	semanticBaseScore = 0.6
	semanticWeight    = 0.3
)

// Ranked is a hybrid ranking result.
type Ranked struct {
	ID    string
	Score float64
	Exact bool
}

// Hybrid merges exact matches with semantic hits. Exact matches score 1.0.
// Semantic hits not already matched exactly score 0.6 + 0.3*similarity. The
// result is sorted by score and holds at most limit items when limit is
// positive.
func Hybrid(exact []string, semantic []Hit, limit int) []Ranked {
	seen := make(map[string]bool, len(exact)+len(semantic))
	out := make([]Ranked, 0, len(exact)+len(semantic))
	for _, id := range exact {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Ranked{ID: id, Score: exactScore, Exact: true})
	}
	for _, h := range semantic {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, Ranked{ID: h.ID, Score: semanticBaseScore + semanticWeight*h.Similarity})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
