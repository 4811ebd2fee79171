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

package srv

import (
	"jinr.ru/greenlab/go-spi/pkg/address"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

// MessagesResp is the response of every message building endpoint
type MessagesResp struct {
	// Seed is only set by the random endpoint
	Seed     int64             `json:"seed,omitempty"`
	Messages []message.Message `json:"messages"`
}

// MemWriteReq is the body of a memory write request
type MemWriteReq struct {
	Start int      `json:"start"`
	Data  []uint64 `json:"data"`
}

// ConfigWriteReq is the body of a config write request
type ConfigWriteReq []encoder.Assignment

type ConfigRow struct {
	Name  string `json:"name"`
	Start uint   `json:"start"`
	Slots uint   `json:"slots"`
	Width string `json:"width"`
}

type PointerRow struct {
	Name    string `json:"name"`
	Address uint   `json:"address"`
}

type MemoryRow struct {
	Name       string `json:"name"`
	Code       uint   `json:"code"`
	MaxAddress uint   `json:"maxAddress"`
}

type TablesResp struct {
	Config   []ConfigRow  `json:"config"`
	Pointers []PointerRow `json:"pointers"`
	Memories []MemoryRow  `json:"memories"`
}

// NewTablesResp flattens the tables, memory codes are the bus codes
func NewTablesResp(t *address.Tables) (*TablesResp, error) {
	resp := &TablesResp{
		Config:   []ConfigRow{},
		Pointers: []PointerRow{},
		Memories: []MemoryRow{},
	}
	for _, p := range t.Config.Placements() {
		resp.Config = append(resp.Config, ConfigRow{Name: p.Name, Start: p.Start, Slots: p.Slots(), Width: p.Width.String()})
	}
	for _, name := range t.Pointers.Names() {
		addr, err := t.Pointers.Lookup(name)
		if err != nil {
			return nil, err
		}
		resp.Pointers = append(resp.Pointers, PointerRow{Name: name, Address: addr})
	}
	for _, r := range t.Memories.Regions() {
		resp.Memories = append(resp.Memories, MemoryRow{Name: r.Name, Code: r.BusCode(), MaxAddress: r.MaxAddress})
	}
	return resp, nil
}
