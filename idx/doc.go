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

// Package idx implements reading dictd .index files.
//
// The .index file is a UTF-8 text file with one entry per line. Each line
// has three tab separated fields:
//  1. The headword.
//  2. The offset of the entry in the uncompressed .dict data.
//  3. The length of the entry in bytes.
//
// Offsets and lengths are written in base64 digits (A-Z, a-z, 0-9, +, /),
// most significant digit first. Headwords beginning with "00database" are
// metadata records describing the dictionary itself.
package idx
