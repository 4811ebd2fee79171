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

package address

import (
	"fmt"
)

// ErrLookup returned when a name is not declared in the schema
type ErrLookup struct {
	Namespace string
	Name      string
}

func (e ErrLookup) Error() string {
	return fmt.Sprintf("Unknown %s name: %s", e.Namespace, e.Name)
}
