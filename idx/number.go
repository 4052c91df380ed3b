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

package idx

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNumber indicates an offset or length field that is not a valid
// dictd base64 number.
var ErrInvalidNumber = errors.New("invalid number")

const digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var digitValue = func() [256]int8 {
	var v [256]int8
	for i := range v {
		v[i] = -1
	}
	for i := range len(digits) {
		v[digits[i]] = int8(i)
	}
	return v
}()

// DecodeNumber decodes a dictd base64 number.
func DecodeNumber(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}

	var n uint64
	for i := range len(s) {
		d := digitValue[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
		if n > math.MaxUint64>>6 {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidNumber, s)
		}
		n = n<<6 | uint64(d)
	}
	return n, nil
}

// EncodeNumber encodes n as a dictd base64 number.
func EncodeNumber(n uint64) string {
	if n == 0 {
		return digits[:1]
	}

	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n&63]
		n >>= 6
	}
	return string(buf[i:])
}
