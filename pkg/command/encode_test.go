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

package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

func TestParseSet(t *testing.T) {
	assignments, err := ParseSet([]string{"mode=3", "kernel=[1, 2, 3]", "empty=[]"})
	require.NoError(t, err)
	assert.Equal(t, []encoder.Assignment{
		{Name: "mode", Value: encoder.Scalar(3)},
		{Name: "kernel", Value: encoder.Sequence(1, 2, 3)},
		{Name: "empty", Value: encoder.Sequence()},
	}, assignments)

	for _, bad := range []string{"mode", "=3", "mode=-1", "mode=abc"} {
		_, err := ParseSet([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseAssignments(t *testing.T) {
	data := []byte(`
- name: mode
  value: 2
- name: kernel
  value: [4, 5]
`)
	assignments, err := ParseAssignments(data)
	require.NoError(t, err)
	assert.Equal(t, []encoder.Assignment{
		{Name: "mode", Value: encoder.Scalar(2)},
		{Name: "kernel", Value: encoder.Sequence(4, 5)},
	}, assignments)
}

func TestParseUints(t *testing.T) {
	values, err := ParseUints([]string{"1", "0x10", " 0b11"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 16, 3}, values)

	_, err = ParseUints([]string{"-1"})
	var argErr ErrArgument
	assert.ErrorAs(t, err, &argErr)
}

func TestLoadEncoder(t *testing.T) {
	cfg := config.NewDefaultConfig()
	_, err := LoadEncoder(cfg, "")
	var argErr ErrArgument
	require.ErrorAs(t, err, &argErr)

	cfg.SchemaPath = "../schema/testdata/chameleon.json"
	enc, err := LoadEncoder(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, uint(16), enc.MessageBitWidth)
}

func TestWriteMessagesAndDecodeFrame(t *testing.T) {
	cfg := config.NewDefaultConfig()
	enc, err := LoadEncoder(cfg, "../schema/testdata/chameleon.json")
	require.NoError(t, err)
	msgs, err := enc.MemoryWrite("bias_memory", []uint64{7, 1}, 3)
	require.NoError(t, err)

	text := &bytes.Buffer{}
	require.NoError(t, WriteMessages(text, enc.Format, msgs, OutputText))
	assert.Equal(t, string(msgs[0])+"\n"+string(msgs[1])+"\n"+string(msgs[2])+"\n", text.String())

	frame := &bytes.Buffer{}
	require.NoError(t, WriteMessages(frame, enc.Format, msgs, OutputBinary))
	transactions, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, []message.Transaction{{
		Instruction: message.Instruction{Code: 2, StartAddress: 3, NumTransactions: 2},
		Data:        []uint64{7, 1},
	}}, transactions)

	err = WriteMessages(&bytes.Buffer{}, enc.Format, msgs, "hex")
	var argErr ErrArgument
	assert.ErrorAs(t, err, &argErr)
}
