/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package bits converts unsigned integers to and from the fixed-width,
// most significant bit first binary strings that make up bus messages.
package bits

import (
	"strconv"
	"strings"
)

// MaxWidth is the widest field that fits an uint64.
const MaxWidth = 64

// Max returns the largest value representable in width bits.
func Max(width uint) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Fits reports whether value can be encoded in width bits.
func Fits(value uint64, width uint) bool {
	return width <= MaxWidth && value <= Max(width)
}

// Encode zero pads value to width bits, most significant bit first.
func Encode(value uint64, width uint) (string, error) {
	if !Fits(value, width) {
		return "", ErrRange{Value: strconv.FormatUint(value, 10), Width: width}
	}
	if width == 0 {
		// only zero fits in zero bits
		return "", nil
	}
	s := strconv.FormatUint(value, 2)
	return strings.Repeat("0", int(width)-len(s)) + s, nil
}

// Decode is the inverse of Encode.
func Decode(bits string) (uint64, error) {
	if len(bits) > MaxWidth {
		return 0, ErrMalformed{Bits: bits, What: "longer than 64 bits"}
	}
	var value uint64
	for i := 0; i < len(bits); i++ {
		value <<= 1
		switch bits[i] {
		case '0':
		case '1':
			value |= 1
		default:
			return 0, ErrMalformed{Bits: bits, What: "not a binary digit at position " + strconv.Itoa(i)}
		}
	}
	return value, nil
}
