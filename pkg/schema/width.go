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

package schema

import (
	"fmt"
)

// Width describes how many address slots an entry occupies and how wide each
// slot is. It is implemented by Scalar, FixedArray and IndexedRange only.
type Width interface {
	// BitWidth is the width of a single slot
	BitWidth() uint
	// Slots is the number of consecutive addresses taken by the entry
	Slots() uint
	String() string
	isWidth()
}

// Scalar is a single slot entry
type Scalar struct {
	Bits uint
}

// FixedArray holds Count slots indexed from zero
type FixedArray struct {
	Bits  uint
	Count uint
}

// IndexedRange holds the slots Start..End-1
type IndexedRange struct {
	Bits  uint
	End   uint
	Start uint
}

var (
	_ Width = Scalar{}
	_ Width = FixedArray{}
	_ Width = IndexedRange{}
)

func (w Scalar) BitWidth() uint { return w.Bits }
func (w Scalar) Slots() uint    { return 1 }
func (w Scalar) String() string { return fmt.Sprintf("%d", w.Bits) }
func (Scalar) isWidth()         {}

func (w FixedArray) BitWidth() uint { return w.Bits }
func (w FixedArray) Slots() uint    { return w.Count }
func (w FixedArray) String() string { return fmt.Sprintf("%d[%d]", w.Bits, w.Count) }
func (FixedArray) isWidth()         {}

func (w IndexedRange) BitWidth() uint { return w.Bits }

// Slots is zero for a malformed range, Validate reports those.
func (w IndexedRange) Slots() uint {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start
}
func (w IndexedRange) String() string { return fmt.Sprintf("%d[%d:%d]", w.Bits, w.End, w.Start) }
func (IndexedRange) isWidth()         {}

// Indices returns the element indices an entry of this width exposes, nil
// for a scalar.
func Indices(w Width) []uint {
	var from, to uint
	switch w := w.(type) {
	case Scalar:
		return nil
	case FixedArray:
		from, to = 0, w.Count
	case IndexedRange:
		from, to = w.Start, w.End
	default:
		panic(fmt.Sprintf("unknown width %T", w))
	}
	var result []uint
	for i := from; i < to; i++ {
		result = append(result, i)
	}
	return result
}
