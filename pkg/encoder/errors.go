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
	"fmt"
)

// ErrCapacity returned when a request does not fit the declared size of its target
type ErrCapacity struct {
	Name  string
	Start int
	Count int
	Max   uint
}

func (e ErrCapacity) Error() string {
	return fmt.Sprintf("Too many transactions (%d) for %s at start address %d (max: %d)", e.Count, e.Name, e.Start, int(e.Max)-e.Start)
}

// ErrShape returned when a list value is written to a scalar register
type ErrShape struct {
	Name string
}

func (e ErrShape) Error() string {
	return fmt.Sprintf("Cannot store a list-type value in the single-value configuration register %s", e.Name)
}

// ErrValidation returned for negative start addresses, empty data and non-positive counts
type ErrValidation struct {
	What string
}

func (e ErrValidation) Error() string {
	return fmt.Sprintf("Invalid request: %s", e.What)
}
