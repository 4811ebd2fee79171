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

package message

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-spi/pkg/bits"
	"jinr.ru/greenlab/go-spi/pkg/schema"
)

func testFormat(t *testing.T) Format {
	f, err := NewFormat(16, 4, 8)
	require.NoError(t, err)
	return f
}

func TestNewFormat(t *testing.T) {
	f := testFormat(t)
	assert.Equal(t, uint(3), f.NumTransactionsBitWidth)
	assert.Equal(t, uint64(7), f.MaxTransactions())
	assert.Equal(t, uint64(15), f.MaxCode())
	assert.Equal(t, f.MessageBitWidth, 1+f.CodeBitWidth+f.AddressBitWidth+f.NumTransactionsBitWidth)

	fromBus, err := FormatOf(schema.Bus{MessageBitWidth: 16, CodeBitWidth: 4, AddressBitWidth: 8})
	require.NoError(t, err)
	assert.Equal(t, f, fromBus)
}

func TestNewFormatErrors(t *testing.T) {
	var formatErr ErrFormat
	_, err := NewFormat(13, 4, 8)
	require.ErrorAs(t, err, &formatErr)
	_, err = NewFormat(72, 4, 8)
	require.ErrorAs(t, err, &formatErr)
}

func TestEncodeInstruction(t *testing.T) {
	f := testFormat(t)
	msg, err := f.EncodeInstruction(Instruction{Read: false, Code: 0, StartAddress: 5, NumTransactions: 1})
	require.NoError(t, err)
	assert.Equal(t, Message("0000000000101001"), msg)

	msg, err = f.EncodeInstruction(Instruction{Read: true, Code: 15, StartAddress: 255, NumTransactions: 7})
	require.NoError(t, err)
	assert.Equal(t, Message("1111111111111111"), msg)
}

func TestEncodeInstructionOutOfRange(t *testing.T) {
	f := testFormat(t)
	tests := []struct {
		name string
		in   Instruction
	}{
		{"code", Instruction{Code: 16}},
		{"address", Instruction{StartAddress: 256}},
		{"transactions", Instruction{NumTransactions: 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.EncodeInstruction(tc.in)
			var rangeErr bits.ErrRange
			require.ErrorAs(t, err, &rangeErr)
		})
	}
}

func TestEncodeData(t *testing.T) {
	f, err := NewFormat(8, 2, 3)
	require.NoError(t, err)

	msg, err := f.EncodeData(255)
	require.NoError(t, err)
	assert.Equal(t, Message("11111111"), msg)

	_, err = f.EncodeData(300)
	var rangeErr bits.ErrRange
	require.ErrorAs(t, err, &rangeErr)
}

func TestEncodeRandomDataReproducible(t *testing.T) {
	f := testFormat(t)
	a := rand.New(rand.NewSource(1))
	b := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		ma, err := f.EncodeRandomData(a)
		require.NoError(t, err)
		mb, err := f.EncodeRandomData(b)
		require.NoError(t, err)
		require.Equal(t, ma, mb)
		require.Equal(t, 16, ma.Len())
	}
}

func TestEncodeRandomDataFullWidth(t *testing.T) {
	f, err := NewFormat(64, 8, 16)
	require.NoError(t, err)
	msg, err := f.EncodeRandomData(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 64, msg.Len())
}

func TestDecodeInstruction(t *testing.T) {
	f := testFormat(t)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		in := Instruction{
			Read:            rng.Intn(2) == 1,
			Code:            uint64(rng.Intn(16)),
			StartAddress:    uint64(rng.Intn(256)),
			NumTransactions: uint64(rng.Intn(8)),
		}
		msg, err := f.EncodeInstruction(in)
		require.NoError(t, err)
		require.Equal(t, 16, msg.Len())
		got, err := f.DecodeInstruction(msg)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}

	_, err := f.DecodeInstruction("0101")
	var lengthErr ErrLength
	require.ErrorAs(t, err, &lengthErr)
}

func TestParse(t *testing.T) {
	f := testFormat(t)
	mustInstruction := func(in Instruction) Message {
		m, err := f.EncodeInstruction(in)
		require.NoError(t, err)
		return m
	}
	mustData := func(v uint64) Message {
		m, err := f.EncodeData(v)
		require.NoError(t, err)
		return m
	}
	msgs := []Message{
		mustInstruction(Instruction{Code: 1, StartAddress: 0, NumTransactions: 2}),
		mustData(10),
		mustData(11),
		mustInstruction(Instruction{Read: true, Code: 2, StartAddress: 3, NumTransactions: 5}),
		mustInstruction(Instruction{Code: 0, StartAddress: 7, NumTransactions: 1}),
		mustData(0xffff),
	}
	got, err := f.Parse(msgs)
	require.NoError(t, err)
	assert.Equal(t, []Transaction{
		{Instruction: Instruction{Code: 1, StartAddress: 0, NumTransactions: 2}, Data: []uint64{10, 11}},
		{Instruction: Instruction{Read: true, Code: 2, StartAddress: 3, NumTransactions: 5}},
		{Instruction: Instruction{Code: 0, StartAddress: 7, NumTransactions: 1}, Data: []uint64{0xffff}},
	}, got)

	_, err = f.Parse(msgs[:2])
	var truncated ErrTruncated
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, 1, truncated.Got)
}
