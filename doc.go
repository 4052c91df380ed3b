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

// Package woerterbuch implements an offline German and English dictionary in
// pure Go.
//
// A dictionary data directory holds two dictd archives, one per direction:
//  1. deu-eng, with German headwords and English translations.
//  2. eng-deu, with English headwords and German translations.
//
// Each archive is an .index file, listing headwords with the offset and size
// of their entry, and a .dict file with the entry text. The .dict file may be
// compressed using the dictzip format. The FreeDict project distributes its
// dictionaries in this form.
//
// Queries are detected as German or English and looked up in one or both
// directions. German nouns are annotated with their grammatical gender.
// Words related to a query can be found by similarity search over
// embeddings stored in SQLite.
//
// More info on the dictd format can be found at this URL:
// https://github.com/cheusov/dictd/blob/master/dictfmt.1.in
package woerterbuch
