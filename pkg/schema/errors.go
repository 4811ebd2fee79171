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

// ErrSchema returned when a schema document is malformed
type ErrSchema struct {
	Name string
	What string
}

func (e ErrSchema) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("Invalid schema: %s", e.What)
	}
	return fmt.Sprintf("Invalid schema entry %s: %s", e.Name, e.What)
}
