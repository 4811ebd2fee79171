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

package bits

import (
	"fmt"
)

// ErrRange returned when a value does not fit the bit width of its field
type ErrRange struct {
	Value string
	Width uint
}

func (e ErrRange) Error() string {
	if e.Width > MaxWidth {
		return fmt.Sprintf("Field width %d exceeds the maximum of %d bits", e.Width, MaxWidth)
	}
	return fmt.Sprintf("Value %s does not fit in %d bits (max: %d)", e.Value, e.Width, Max(e.Width))
}

// ErrMalformed returned when a string is not a valid binary field
type ErrMalformed struct {
	Bits string
	What string
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("Malformed binary field %q: %s", e.Bits, e.What)
}
