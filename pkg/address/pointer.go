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
	"jinr.ru/greenlab/go-spi/pkg/schema"
)

// PointerTable maps pointer names to their address
type PointerTable struct {
	names []string
	index map[string]uint
}

// NewPointerTable gives every pointer the address equal to its position.
// TODO: pointers wider than a message still take a single slot, waiting on
// the bridge to support multi-slot pointers.
func NewPointerTable(entries []schema.Entry) *PointerTable {
	t := &PointerTable{
		index: make(map[string]uint, len(entries)),
	}
	for i, e := range entries {
		if _, ok := t.index[e.Name]; !ok {
			t.names = append(t.names, e.Name)
		}
		t.index[e.Name] = uint(i)
	}
	return t
}

func (t *PointerTable) Lookup(name string) (uint, error) {
	addr, ok := t.index[name]
	if !ok {
		return 0, ErrLookup{Namespace: NamespacePointer, Name: name}
	}
	return addr, nil
}

// Names returns the pointer names in schema order
func (t *PointerTable) Names() []string {
	result := make([]string, len(t.names))
	copy(result, t.names)
	return result
}
