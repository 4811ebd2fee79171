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

// Package encoder turns config, pointer and memory requests into ordered
// sequences of control bus messages.
package encoder

import (
	"fmt"

	"jinr.ru/greenlab/go-spi/pkg/address"
	"jinr.ru/greenlab/go-spi/pkg/bits"
	"jinr.ru/greenlab/go-spi/pkg/log"
	"jinr.ru/greenlab/go-spi/pkg/message"
	"jinr.ru/greenlab/go-spi/pkg/schema"
)

const (
	// ConfigCode selects the config register space, memory regions follow from 1
	ConfigCode = 0
	// MaxRandomCount bounds a single random data request
	MaxRandomCount = 1 << 16
)

// Encoder builds messages for a single schema. It holds no mutable state
// and may be used from several goroutines.
type Encoder struct {
	message.Format
	*address.Tables
}

// New compiles the address tables of a schema
func New(doc *schema.Document) (*Encoder, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	format, err := message.FormatOf(doc.Bus)
	if err != nil {
		return nil, err
	}
	tables := address.NewTables(doc)
	if uint64(tables.Memories.Len()) > format.MaxCode() {
		log.Warning("%d memories do not fit a %d bit code, the last ones can not be addressed",
			tables.Memories.Len(), format.CodeBitWidth)
	}
	if size := uint64(tables.Config.Size()); size > 0 && size-1 > bits.Max(format.AddressBitWidth) {
		log.Warning("Config registers span %d addresses, more than a %d bit address can reach",
			tables.Config.Size(), format.AddressBitWidth)
	}
	log.Debug("Compiled schema: %d config registers over %d addresses, %d pointers, %d memories",
		len(doc.Config), tables.Config.Size(), len(doc.Pointers), tables.Memories.Len())
	return &Encoder{
		Format: format,
		Tables: tables,
	}, nil
}

// NewFromFile loads a schema file and builds its encoder
func NewFromFile(path string) (*Encoder, error) {
	doc, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// write appends an instruction followed by one data message per value
func (e *Encoder) write(msgs []message.Message, code, start uint64, values []uint64) ([]message.Message, error) {
	instruction, err := e.EncodeInstruction(message.Instruction{
		Read:            false,
		Code:            code,
		StartAddress:    start,
		NumTransactions: uint64(len(values)),
	})
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, instruction)
	for _, v := range values {
		data, err := e.EncodeData(v)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, data)
	}
	return msgs, nil
}

// ConfigWrite writes each assignment in order. A list value needs an array
// or range register with at least as many slots, a single value goes to the
// first slot of any register.
func (e *Encoder) ConfigWrite(assignments []Assignment) ([]message.Message, error) {
	var msgs []message.Message
	for _, a := range assignments {
		placement, err := e.Config.Lookup(a.Name)
		if err != nil {
			return nil, err
		}
		if a.Value.IsSequence() {
			if _, ok := placement.Width.(schema.Scalar); ok {
				return nil, ErrShape{Name: a.Name}
			}
			if n := len(a.Value.Values()); uint(n) > placement.Slots() {
				return nil, ErrCapacity{Name: a.Name, Start: 0, Count: n, Max: placement.Slots()}
			}
		}
		msgs, err = e.write(msgs, ConfigCode, uint64(placement.Start), a.Value.Values())
		if err != nil {
			return nil, err
		}
		log.Debug("Config write: %s = %s at address %d", a.Name, a.Value, placement.Start)
	}
	return msgs, nil
}

// PointerRead requests the value behind a pointer
func (e *Encoder) PointerRead(name string) (message.Message, error) {
	addr, err := e.Pointers.Lookup(name)
	if err != nil {
		return "", err
	}
	return e.EncodeInstruction(message.Instruction{
		Read:            true,
		Code:            ConfigCode,
		StartAddress:    uint64(addr),
		NumTransactions: 1,
	})
}

// MemoryWrite writes data to a memory region starting at start. Transfers
// longer than MaxTransactions are split into several instructions with
// consecutive start addresses.
func (e *Encoder) MemoryWrite(name string, data []uint64, start int) ([]message.Message, error) {
	if start < 0 {
		return nil, ErrValidation{What: "start address must be non-negative"}
	}
	if len(data) == 0 {
		return nil, ErrValidation{What: "data must not be empty"}
	}
	region, err := e.Memories.Lookup(name)
	if err != nil {
		return nil, err
	}
	if uint64(start)+uint64(len(data)) > uint64(region.MaxAddress) {
		return nil, ErrCapacity{Name: name, Start: start, Count: len(data), Max: region.MaxAddress}
	}

	var msgs []message.Message
	current := uint64(start)
	for _, chunk := range chunks(data, int(e.MaxTransactions())) {
		msgs, err = e.write(msgs, uint64(region.BusCode()), current, chunk)
		if err != nil {
			return nil, err
		}
		current += uint64(len(chunk))
	}
	log.Debug("Memory write: %s, %d words at address %d", name, len(data), start)
	return msgs, nil
}

// MemoryRead requests n words of a memory region. Reads are not split, a
// count above MaxTransactions fails while encoding the instruction.
func (e *Encoder) MemoryRead(name string, start, n int) (message.Message, error) {
	if start < 0 {
		return "", ErrValidation{What: "start address must be non-negative"}
	}
	if n <= 0 {
		return "", ErrValidation{What: "number of transactions must be positive"}
	}
	region, err := e.Memories.Lookup(name)
	if err != nil {
		return "", err
	}
	if uint64(start)+uint64(n) > uint64(region.MaxAddress) {
		return "", ErrCapacity{Name: name, Start: start, Count: n, Max: region.MaxAddress}
	}
	return e.EncodeInstruction(message.Instruction{
		Read:            true,
		Code:            uint64(region.BusCode()),
		StartAddress:    uint64(start),
		NumTransactions: uint64(n),
	})
}

// RandomData returns n data messages drawn from src
func (e *Encoder) RandomData(src message.Source, n int) ([]message.Message, error) {
	if n < 0 || n > MaxRandomCount {
		return nil, ErrValidation{What: fmt.Sprintf("count must be between 0 and %d", MaxRandomCount)}
	}
	msgs := make([]message.Message, 0, n)
	for i := 0; i < n; i++ {
		m, err := e.EncodeRandomData(src)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// chunks splits data into consecutive pieces of at most size elements
func chunks(data []uint64, size int) [][]uint64 {
	var result [][]uint64
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		result = append(result, data[i:end])
	}
	return result
}
