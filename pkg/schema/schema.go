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

// Package schema describes the configuration registers, pointers and memory
// regions of a design and loads them from JSON or YAML documents.
package schema

import (
	"encoding/json"
	"os"

	"sigs.k8s.io/yaml"
)

// Entry is a named config register or pointer. The order of entries in a
// schema decides their addresses.
type Entry struct {
	Width Width
	Name  string
	// RequiresReset is only consumed by the HDL generator
	RequiresReset bool
}

// Memory is a named memory region of NumRows rows, BitWidth bits each
type Memory struct {
	Name     string `json:"name"`
	NumRows  uint   `json:"numRows"`
	BitWidth uint   `json:"bitWidth"`
}

// Bus holds the field widths of the control bus messages
type Bus struct {
	MessageBitWidth uint `json:"messageBitWidth"`
	CodeBitWidth    uint `json:"codeBitWidth"`
	AddressBitWidth uint `json:"addressBitWidth"`
}

// Document is a complete schema as found in a schema file
type Document struct {
	Bus      Bus      `json:"bus"`
	Config   []Entry  `json:"config"`
	Pointers []Entry  `json:"pointers"`
	Memories []Memory `json:"memories"`
}

// record is the interchange form of an Entry
type record struct {
	Width         *uint  `json:"width"`
	Count         *uint  `json:"count,omitempty"`
	EndIndex      *uint  `json:"endIndex,omitempty"`
	StartIndex    *uint  `json:"startIndex,omitempty"`
	Name          string `json:"name"`
	RequiresReset bool   `json:"requiresReset,omitempty"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Width == nil {
		return ErrSchema{Name: r.Name, What: "width is missing"}
	}
	hasRange := r.EndIndex != nil || r.StartIndex != nil
	switch {
	case r.Count != nil && hasRange:
		return ErrSchema{Name: r.Name, What: "count can not be combined with endIndex/startIndex"}
	case r.Count != nil:
		e.Width = FixedArray{Bits: *r.Width, Count: *r.Count}
	case hasRange:
		if r.EndIndex == nil || r.StartIndex == nil {
			return ErrSchema{Name: r.Name, What: "both endIndex and startIndex are required"}
		}
		e.Width = IndexedRange{Bits: *r.Width, End: *r.EndIndex, Start: *r.StartIndex}
	default:
		e.Width = Scalar{Bits: *r.Width}
	}
	e.Name = r.Name
	e.RequiresReset = r.RequiresReset
	return nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	r := record{Name: e.Name, RequiresReset: e.RequiresReset}
	switch w := e.Width.(type) {
	case Scalar:
		r.Width = &w.Bits
	case FixedArray:
		r.Width, r.Count = &w.Bits, &w.Count
	case IndexedRange:
		r.Width, r.EndIndex, r.StartIndex = &w.Bits, &w.End, &w.Start
	default:
		return nil, ErrSchema{Name: e.Name, What: "width is missing"}
	}
	return json.Marshal(r)
}

// Parse reads a JSON or YAML schema document and validates it.
func Parse(data []byte) (*Document, error) {
	// converting first keeps ErrSchema from UnmarshalJSON unwrapped
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(j, doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads a schema document from a file
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks the shape of every entry. Duplicate names are allowed,
// the last one wins when addresses are compiled.
func (d *Document) Validate() error {
	if d.Bus.MessageBitWidth == 0 {
		return ErrSchema{What: "bus.messageBitWidth must be positive"}
	}
	for _, e := range d.Config {
		if err := validateEntry(e); err != nil {
			return err
		}
		// a register wider than a data message can not be written in one transaction
		if e.Width.BitWidth() > d.Bus.MessageBitWidth {
			return ErrSchema{Name: e.Name, What: "width exceeds bus.messageBitWidth"}
		}
	}
	// pointers take a single slot whatever their width
	for _, e := range d.Pointers {
		if err := validateEntry(e); err != nil {
			return err
		}
	}
	for _, m := range d.Memories {
		if m.Name == "" {
			return ErrSchema{What: "memory name is empty"}
		}
		if m.NumRows == 0 || m.BitWidth == 0 {
			return ErrSchema{Name: m.Name, What: "numRows and bitWidth must be positive"}
		}
	}
	return nil
}

func validateEntry(e Entry) error {
	if e.Name == "" {
		return ErrSchema{What: "entry name is empty"}
	}
	if e.Width == nil {
		return ErrSchema{Name: e.Name, What: "width is missing"}
	}
	if r, ok := e.Width.(IndexedRange); ok && r.End < r.Start {
		return ErrSchema{Name: e.Name, What: "endIndex is smaller than startIndex"}
	}
	if e.Width.BitWidth() == 0 {
		return ErrSchema{Name: e.Name, What: "width must be positive"}
	}
	return nil
}
