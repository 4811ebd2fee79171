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

// Package address assigns bus addresses to the entries of a schema and
// provides the read-only lookup tables the transaction builders use.
package address

import (
	"fmt"

	"jinr.ru/greenlab/go-spi/pkg/schema"
)

// Placement is where an entry lives in its address space
type Placement struct {
	Name  string
	Start uint
	Width schema.Width
}

// Slots is the number of addresses taken by the entry
func (p Placement) Slots() uint {
	return p.Width.Slots()
}

// End is the first address after the entry
func (p Placement) End() uint {
	return p.Start + p.Slots()
}

// Cell is a single addressable slot, as rendered by the HDL generator
type Cell struct {
	Address uint
	Name    string
	Bits    uint
}

// ConfigTable maps config register names to their start address
type ConfigTable struct {
	placements []Placement
	index      map[string]int
	size       uint
}

// Compile walks the entries in order, giving each one the next free address.
// A later entry with the same name replaces the earlier one in lookups but
// still consumes its own slots.
func Compile(entries []schema.Entry) *ConfigTable {
	t := &ConfigTable{
		index: make(map[string]int, len(entries)),
	}
	var current uint
	for _, e := range entries {
		t.index[e.Name] = len(t.placements)
		t.placements = append(t.placements, Placement{Name: e.Name, Start: current, Width: e.Width})
		current += e.Width.Slots()
	}
	t.size = current
	return t
}

// Lookup returns the placement of a config register
func (t *ConfigTable) Lookup(name string) (Placement, error) {
	i, ok := t.index[name]
	if !ok {
		return Placement{}, ErrLookup{Namespace: NamespaceConfig, Name: name}
	}
	return t.placements[i], nil
}

// Start returns the start address of a config register
func (t *ConfigTable) Start(name string) (uint, error) {
	p, err := t.Lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Start, nil
}

// Placements returns the placements in schema order, duplicates included
func (t *ConfigTable) Placements() []Placement {
	result := make([]Placement, len(t.placements))
	copy(result, t.placements)
	return result
}

// Names returns the register names in schema order, duplicates included
func (t *ConfigTable) Names() []string {
	names := make([]string, 0, len(t.placements))
	for _, p := range t.placements {
		names = append(names, p.Name)
	}
	return names
}

// Size is the number of addresses used by the whole table
func (t *ConfigTable) Size() uint {
	return t.size
}

// Layout expands every entry into its slots: name for a scalar, name[i]
// for arrays and ranges where i runs over the declared indices.
func (t *ConfigTable) Layout() []Cell {
	var cells []Cell
	for _, p := range t.placements {
		indices := schema.Indices(p.Width)
		if indices == nil {
			cells = append(cells, Cell{Address: p.Start, Name: p.Name, Bits: p.Width.BitWidth()})
			continue
		}
		for offset, i := range indices {
			cells = append(cells, Cell{
				Address: p.Start + uint(offset),
				Name:    fmt.Sprintf("%s[%d]", p.Name, i),
				Bits:    p.Width.BitWidth(),
			})
		}
	}
	return cells
}
