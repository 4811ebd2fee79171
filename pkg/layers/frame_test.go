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

package layers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-spi/pkg/message"
)

func TestPackLayout(t *testing.T) {
	format, err := message.NewFormat(16, 4, 8)
	require.NoError(t, err)
	msgs := []message.Message{"0000000000101001", "1000000000000001"}

	data, err := Pack(format, msgs)
	require.NoError(t, err)
	assert.Equal(t, []byte{16, 4, 8, 0, 0, 0, 0, 2, 0x00, 0x29, 0x80, 0x01}, data)
}

func TestPackUnpack(t *testing.T) {
	for _, widths := range [][3]uint{{16, 4, 8}, {12, 2, 5}, {64, 8, 16}, {9, 1, 1}} {
		format, err := message.NewFormat(widths[0], widths[1], widths[2])
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(int64(widths[0])))
		var msgs []message.Message
		for i := 0; i < 50; i++ {
			m, err := format.EncodeRandomData(rng)
			require.NoError(t, err)
			msgs = append(msgs, m)
		}

		data, err := Pack(format, msgs)
		require.NoError(t, err)
		frame, err := Unpack(data)
		require.NoError(t, err)
		assert.Equal(t, format, frame.Format)
		assert.Equal(t, msgs, frame.Messages)
		assert.Equal(t, len(data), frame.Len())
	}
}

func TestPackRejectsWrongLength(t *testing.T) {
	format, err := message.NewFormat(16, 4, 8)
	require.NoError(t, err)
	_, err = Pack(format, []message.Message{"0101"})
	var lengthErr message.ErrLength
	require.ErrorAs(t, err, &lengthErr)
}

func TestUnpackTruncated(t *testing.T) {
	_, err := Unpack([]byte{16, 4})
	require.Error(t, err)

	_, err = Unpack([]byte{16, 4, 8, 0, 0, 0, 0, 2, 0x00, 0x29})
	require.Error(t, err)
}

func TestUnpackValueTooWide(t *testing.T) {
	// a 12 bit message can not hold 0xffff
	_, err := Unpack([]byte{12, 2, 5, 0, 0, 0, 0, 1, 0xff, 0xff})
	require.Error(t, err)
}
