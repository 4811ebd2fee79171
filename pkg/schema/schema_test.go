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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	assert.Equal(t, uint(1), Scalar{Bits: 8}.Slots())
	assert.Equal(t, uint(32), FixedArray{Bits: 4, Count: 32}.Slots())
	assert.Equal(t, uint(30), IndexedRange{Bits: 16, End: 32, Start: 2}.Slots())
	assert.Equal(t, uint(0), IndexedRange{Bits: 16, End: 3, Start: 3}.Slots())
}

func TestIndices(t *testing.T) {
	assert.Nil(t, Indices(Scalar{Bits: 1}))
	assert.Equal(t, []uint{0, 1, 2}, Indices(FixedArray{Bits: 1, Count: 3}))
	assert.Equal(t, []uint{2, 3}, Indices(IndexedRange{Bits: 1, End: 4, Start: 2}))
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load("testdata/chameleon.json")
	require.NoError(t, err)

	assert.Equal(t, Bus{MessageBitWidth: 16, CodeBitWidth: 4, AddressBitWidth: 8}, doc.Bus)
	require.Len(t, doc.Config, 10)
	assert.Equal(t, "enable_processing", doc.Config[0].Name)
	assert.True(t, doc.Config[0].RequiresReset)
	assert.Equal(t, Scalar{Bits: 2}, doc.Config[1].Width)
	assert.Equal(t, FixedArray{Bits: 4, Count: 32}, doc.Config[6].Width)
	assert.Equal(t, IndexedRange{Bits: 16, End: 32, Start: 2}, doc.Config[9].Width)
	require.Len(t, doc.Pointers, 2)
	require.Len(t, doc.Memories, 2)
	assert.Equal(t, Memory{Name: "bias_memory", NumRows: 47, BitWidth: 3}, doc.Memories[1])
}

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(`
bus:
  messageBitWidth: 8
  codeBitWidth: 2
  addressBitWidth: 3
config:
  - {width: 8, name: b}
  - {width: 4, count: 2, name: a}
memories:
  - {name: m, numRows: 4, bitWidth: 8}
`))
	require.NoError(t, err)
	require.Len(t, doc.Config, 2)
	// list order is kept, not sorted
	assert.Equal(t, "b", doc.Config[0].Name)
	assert.Equal(t, FixedArray{Bits: 4, Count: 2}, doc.Config[1].Width)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no width", `{"bus": {"messageBitWidth": 8}, "config": [{"name": "a"}]}`},
		{"count and range", `{"bus": {"messageBitWidth": 8}, "config": [{"width": 1, "count": 2, "endIndex": 3, "startIndex": 0, "name": "a"}]}`},
		{"half range", `{"bus": {"messageBitWidth": 8}, "config": [{"width": 1, "endIndex": 3, "name": "a"}]}`},
		{"reversed range", `{"bus": {"messageBitWidth": 8}, "config": [{"width": 1, "endIndex": 1, "startIndex": 3, "name": "a"}]}`},
		{"empty name", `{"bus": {"messageBitWidth": 8}, "pointers": [{"width": 1, "name": ""}]}`},
		{"zero width pointer", `{"bus": {"messageBitWidth": 8}, "pointers": [{"width": 0, "name": "p"}]}`},
		{"too wide", `{"bus": {"messageBitWidth": 8}, "config": [{"width": 9, "name": "a"}]}`},
		{"no bus", `{"config": [{"width": 1, "name": "a"}]}`},
		{"empty memory", `{"bus": {"messageBitWidth": 8}, "memories": [{"name": "m", "numRows": 0, "bitWidth": 8}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			var schemaErr ErrSchema
			require.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestParseWidePointer(t *testing.T) {
	doc, err := Parse([]byte(`{"bus": {"messageBitWidth": 8}, "pointers": [{"width": 32, "name": "counter"}]}`))
	require.NoError(t, err)
	assert.Equal(t, Scalar{Bits: 32}, doc.Pointers[0].Width)
}

func TestEntryJSON(t *testing.T) {
	entries := []Entry{
		{Width: Scalar{Bits: 3}, Name: "s"},
		{Width: FixedArray{Bits: 4, Count: 5}, Name: "f", RequiresReset: true},
		{Width: IndexedRange{Bits: 6, End: 9, Start: 1}, Name: "r"},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"width": 3, "name": "s"},
		{"width": 4, "count": 5, "name": "f", "requiresReset": true},
		{"width": 6, "endIndex": 9, "startIndex": 1, "name": "r"}
	]`, string(data))

	var back []Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, entries, back)
}
