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

package message

import (
	"fmt"
)

// ErrFormat returned when the bus field widths are inconsistent
type ErrFormat struct {
	What string
}

func (e ErrFormat) Error() string {
	return fmt.Sprintf("Invalid message format: %s", e.What)
}

// ErrLength returned when a message does not have the width of the bus
type ErrLength struct {
	Got  int
	Want uint
}

func (e ErrLength) Error() string {
	return fmt.Sprintf("Message has %d bits, expected %d", e.Got, e.Want)
}

// ErrTruncated returned when a write instruction is not followed by all its data messages
type ErrTruncated struct {
	Index int
	Want  uint64
	Got   int
}

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("Instruction at %d announces %d data messages, only %d left", e.Index, e.Want, e.Got)
}
