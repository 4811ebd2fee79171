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

// Region is a memory region as seen from the bus
type Region struct {
	Name string
	// Code is the position of the region in the schema
	Code uint
	// MaxAddress is the number of message-sized words the region holds
	MaxAddress uint
}

// BusCode is the code put on the wire, code 0 selects the config registers
func (r Region) BusCode() uint {
	return r.Code + 1
}

// MemoryTable maps memory names to their code and capacity
type MemoryTable struct {
	regions []Region
	index   map[string]int
}

// NewMemoryTable numbers the regions in declaration order. The capacity is
// NumRows*BitWidth/messageBitWidth rounded down, a partial last word is not
// addressable.
func NewMemoryTable(memories []schema.Memory, messageBitWidth uint) *MemoryTable {
	t := &MemoryTable{
		index: make(map[string]int, len(memories)),
	}
	for i, m := range memories {
		var maxAddress uint
		if messageBitWidth > 0 {
			maxAddress = m.NumRows * m.BitWidth / messageBitWidth
		}
		t.index[m.Name] = len(t.regions)
		t.regions = append(t.regions, Region{
			Name:       m.Name,
			Code:       uint(i),
			MaxAddress: maxAddress,
		})
	}
	return t
}

func (t *MemoryTable) Lookup(name string) (Region, error) {
	i, ok := t.index[name]
	if !ok {
		return Region{}, ErrLookup{Namespace: NamespaceMemory, Name: name}
	}
	return t.regions[i], nil
}

// Regions returns all regions in schema order
func (t *MemoryTable) Regions() []Region {
	result := make([]Region, len(t.regions))
	copy(result, t.regions)
	return result
}

// Len is the number of regions
func (t *MemoryTable) Len() int {
	return len(t.regions)
}
