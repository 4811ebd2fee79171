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

package encoder

import (
	"encoding/json"
	"fmt"
)

// Value is the value written to a config register, either a single number
// or a sequence filling consecutive slots
type Value struct {
	scalar   uint64
	sequence []uint64
	isSeq    bool
}

// Scalar returns a single number value
func Scalar(v uint64) Value {
	return Value{scalar: v}
}

// Sequence returns a list value, an empty list is allowed
func Sequence(vs ...uint64) Value {
	seq := make([]uint64, len(vs))
	copy(seq, vs)
	return Value{sequence: seq, isSeq: true}
}

// IsSequence reports whether the value is a list
func (v Value) IsSequence() bool {
	return v.isSeq
}

// Values returns the numbers to write in order
func (v Value) Values() []uint64 {
	if v.isSeq {
		return v.sequence
	}
	return []uint64{v.scalar}
}

func (v Value) String() string {
	if v.isSeq {
		return fmt.Sprintf("%v", v.sequence)
	}
	return fmt.Sprintf("%d", v.scalar)
}

// UnmarshalJSON accepts a number or an array of numbers
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return ErrValidation{What: "config value is null"}
	}
	var seq []uint64
	if err := json.Unmarshal(data, &seq); err == nil {
		*v = Sequence(seq...)
		return nil
	}
	var scalar uint64
	if err := json.Unmarshal(data, &scalar); err != nil {
		return ErrValidation{What: fmt.Sprintf("config value must be a non-negative integer or a list of them, got %s", string(data))}
	}
	*v = Scalar(scalar)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isSeq {
		return json.Marshal(v.Values())
	}
	return json.Marshal(v.scalar)
}

// Assignment is a single entry of a config write request. A request is a
// list of assignments, messages are emitted in list order.
type Assignment struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}
