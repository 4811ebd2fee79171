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

// Package message builds the fixed-width instruction and data messages of
// the control bus.
//
// An instruction message is laid out most significant bit first as
//
//	| read (1) | code | start address | number of transactions |
//
// and a data message carries a single value of the full message width.
package message

import (
	"jinr.ru/greenlab/go-spi/pkg/bits"
	"jinr.ru/greenlab/go-spi/pkg/schema"
)

// Format holds the field widths of an encoder instance. The four instruction
// fields always add up to MessageBitWidth.
type Format struct {
	MessageBitWidth         uint
	CodeBitWidth            uint
	AddressBitWidth         uint
	NumTransactionsBitWidth uint
}

// NewFormat derives the transaction count width from the other three.
func NewFormat(messageBitWidth, codeBitWidth, addressBitWidth uint) (Format, error) {
	if messageBitWidth > bits.MaxWidth {
		return Format{}, ErrFormat{What: "message width exceeds 64 bits"}
	}
	if messageBitWidth < codeBitWidth+addressBitWidth+2 {
		return Format{}, ErrFormat{What: "no bits left for the number of transactions"}
	}
	return Format{
		MessageBitWidth:         messageBitWidth,
		CodeBitWidth:            codeBitWidth,
		AddressBitWidth:         addressBitWidth,
		NumTransactionsBitWidth: messageBitWidth - codeBitWidth - addressBitWidth - 1,
	}, nil
}

// FormatOf is NewFormat over the bus section of a schema
func FormatOf(bus schema.Bus) (Format, error) {
	return NewFormat(bus.MessageBitWidth, bus.CodeBitWidth, bus.AddressBitWidth)
}

// MaxTransactions is the largest transaction count an instruction can carry
func (f Format) MaxTransactions() uint64 {
	return bits.Max(f.NumTransactionsBitWidth)
}

// MaxCode is the largest code an instruction can carry
func (f Format) MaxCode() uint64 {
	return bits.Max(f.CodeBitWidth)
}

// Message is a string of exactly MessageBitWidth '0'/'1' characters
type Message string

// Len is the number of bits in the message
func (m Message) Len() int {
	return len(m)
}

// Value returns the message as an unsigned integer
func (m Message) Value() (uint64, error) {
	return bits.Decode(string(m))
}

// Instruction is the decoded form of an instruction message
type Instruction struct {
	Read            bool   `json:"read"`
	Code            uint64 `json:"code"`
	StartAddress    uint64 `json:"startAddress"`
	NumTransactions uint64 `json:"numTransactions"`
}

// Source provides random values, *math/rand.Rand satisfies it
type Source interface {
	Uint64() uint64
}

// EncodeInstruction packs the four instruction fields into a message
func (f Format) EncodeInstruction(in Instruction) (Message, error) {
	var read uint64
	if in.Read {
		read = 1
	}
	fields := []struct {
		value uint64
		width uint
	}{
		{read, 1},
		{in.Code, f.CodeBitWidth},
		{in.StartAddress, f.AddressBitWidth},
		{in.NumTransactions, f.NumTransactionsBitWidth},
	}
	var msg string
	for _, field := range fields {
		s, err := bits.Encode(field.value, field.width)
		if err != nil {
			return "", err
		}
		msg += s
	}
	return Message(msg), nil
}

// EncodeData turns a value into a data message
func (f Format) EncodeData(value uint64) (Message, error) {
	s, err := bits.Encode(value, f.MessageBitWidth)
	if err != nil {
		return "", err
	}
	return Message(s), nil
}

// EncodeRandomData draws a value uniformly from the full message range.
// Only meant for stress tests, seed src to reproduce a run.
func (f Format) EncodeRandomData(src Source) (Message, error) {
	return f.EncodeData(src.Uint64() & bits.Max(f.MessageBitWidth))
}

// DecodeInstruction is the inverse of EncodeInstruction
func (f Format) DecodeInstruction(m Message) (Instruction, error) {
	if err := f.check(m); err != nil {
		return Instruction{}, err
	}
	s := string(m)
	var values [4]uint64
	offset := uint(0)
	for i, width := range []uint{1, f.CodeBitWidth, f.AddressBitWidth, f.NumTransactionsBitWidth} {
		v, err := bits.Decode(s[offset : offset+width])
		if err != nil {
			return Instruction{}, err
		}
		values[i] = v
		offset += width
	}
	return Instruction{
		Read:            values[0] == 1,
		Code:            values[1],
		StartAddress:    values[2],
		NumTransactions: values[3],
	}, nil
}

// DecodeData is the inverse of EncodeData
func (f Format) DecodeData(m Message) (uint64, error) {
	if err := f.check(m); err != nil {
		return 0, err
	}
	return m.Value()
}

func (f Format) check(m Message) error {
	if uint(m.Len()) != f.MessageBitWidth {
		return ErrLength{Got: m.Len(), Want: f.MessageBitWidth}
	}
	return nil
}
