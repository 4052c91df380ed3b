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

// Package folding implements the text transformers that produce the
// normalized forms used as index keys.
package folding

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func returns a fresh transformer. Transformers carry state so a new one is
// needed for every string.
type Func func() transform.Transformer

// German folds whitespace and lower cases the input. Umlauts and ß are kept
// so that "Bär" and "bar" remain distinct keys.
func German() transform.Transformer {
	return transform.Chain(
		&Whitespace{},
		norm.NFC,
		cases.Lower(language.German),
	)
}

// English folds whitespace, lower cases the input and strips diacritics so
// that "café" and "cafe" share a key.
func English() transform.Transformer {
	return transform.Chain(
		&Whitespace{},
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Lower(language.English),
	)
}

// Nop returns the input unchanged.
func Nop() transform.Transformer {
	return transform.Nop
}

// String applies a fresh transformer from f to s. If folding fails the input
// is returned with only surrounding whitespace removed.
func String(f Func, s string) string {
	if f == nil {
		return s
	}
	out, _, err := transform.String(f(), s)
	if err != nil {
		out, _, err = transform.String(&Whitespace{}, s)
		if err != nil {
			return s
		}
	}
	return out
}
