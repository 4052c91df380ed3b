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
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/ianlewis/go-woerterbuch/internal/folding"
)

// Static model file layout, all integers little endian:
//
//	magic   [4]byte "WBSM"
//	version uint32
//	nameLen uint16, name [nameLen]byte
//	dims    uint32
//	count   uint32
//	count times:
//	  tokLen uint16, token [tokLen]byte, vector [dims]float32
const (
	staticMagic   = "WBSM"
	staticVersion = 1

	maxStaticDims = 4096
)

// ErrInvalidModel is returned when a model file cannot be parsed.
var ErrInvalidModel = errors.New("invalid model")

// StaticModel embeds text by averaging the vectors of its tokens.
type StaticModel struct {
	name   string
	dims   int
	tokens map[string]Vector
}

// NewStaticModel returns a model from a token table. Every vector must have
// dims entries.
func NewStaticModel(name string, dims int, tokens map[string]Vector) (*StaticModel, error) {
	if dims <= 0 || dims > maxStaticDims {
		return nil, fmt.Errorf("%w: dimensions %d", ErrInvalidModel, dims)
	}
	m := &StaticModel{
		name:   name,
		dims:   dims,
		tokens: make(map[string]Vector, len(tokens)),
	}
	for tok, v := range tokens {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: token %q has %d dimensions, want %d", ErrInvalidModel, tok, len(v), dims)
		}
		m.tokens[folding.String(folding.German, tok)] = v
	}
	return m, nil
}

// LoadStaticModel reads a model written by WriteTo.
func LoadStaticModel(r io.Reader) (*StaticModel, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %w", ErrInvalidModel, err)
	}
	if string(magic[:]) != staticMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidModel, magic[:])
	}

	var version uint32
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: reading version: %w", ErrInvalidModel, err)
	}
	if version != staticVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidModel, version)
	}

	name, err := readString(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading name: %w", ErrInvalidModel, err)
	}

	var dims, count uint32
	if err := binary.Read(br, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: reading dimensions: %w", ErrInvalidModel, err)
	}
	if dims == 0 || dims > maxStaticDims {
		return nil, fmt.Errorf("%w: dimensions %d", ErrInvalidModel, dims)
	}
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: reading token count: %w", ErrInvalidModel, err)
	}

	m := &StaticModel{
		name:   name,
		dims:   int(dims),
		tokens: make(map[string]Vector),
	}
	buf := make([]byte, 4*dims)
	for i := range count {
		tok, err := readString(br)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d: %w", ErrInvalidModel, i, err)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: vector %d: %w", ErrInvalidModel, i, err)
		}
		v, _ := Decode(buf)
		m.tokens[tok] = v
	}
	return m, nil
}

// WriteTo writes the model in the format read by LoadStaticModel. Tokens are
// written in sorted order.
func (m *StaticModel) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countWriter{w: bw}

	_, _ = cw.Write([]byte(staticMagic))
	_ = binary.Write(cw, binary.LittleEndian, uint32(staticVersion))
	writeString(cw, m.name)
	_ = binary.Write(cw, binary.LittleEndian, uint32(m.dims))
	_ = binary.Write(cw, binary.LittleEndian, uint32(len(m.tokens)))

	toks := make([]string, 0, len(m.tokens))
	for tok := range m.tokens {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	for _, tok := range toks {
		writeString(cw, tok)
		_, _ = cw.Write(Encode(m.tokens[tok]))
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

// Dimensions implements Embedder.
func (m *StaticModel) Dimensions() int {
	return m.dims
}

// Model implements Embedder.
func (m *StaticModel) Model() string {
	return m.name
}

// Len returns the number of tokens in the model.
func (m *StaticModel) Len() int {
	return len(m.tokens)
}

// Embed implements Embedder. Text without any known token yields a zero
// vector.
func (m *StaticModel) Embed(ctx context.Context, text string) (Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	toks := tokenize(text)
	if len(toks) == 0 {
		return nil, ErrEmptyText
	}

	out := make(Vector, m.dims)
	var n int
	for _, tok := range toks {
		v, ok := m.tokens[tok]
		if !ok {
			continue
		}
		for i, x := range v {
			out[i] += x
		}
		n++
	}
	if n == 0 {
		return out, nil
	}
	for i := range out {
		out[i] /= float32(n)
	}
	return Normalize(out), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(folding.String(folding.German, text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeString(w io.Writer, s string) {
	if len(s) > 0xffff {
		s = s[:0xffff]
	}
	_ = binary.Write(w, binary.LittleEndian, uint16(len(s)))
	_, _ = w.Write([]byte(s))
}

// countWriter counts bytes written and remembers the first error.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
