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
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-spi/pkg/message"
)

const (
	// FrameLayerNum identifies the layer
	FrameLayerNum = 2001
	// FrameHeaderSize is the size of the frame header in bytes
	FrameHeaderSize = 8
)

// FrameLayer carries an ordered message sequence to the bus transport.
//
// Layout, big endian:
//
//	| msg bits (1) | code bits (1) | addr bits (1) | reserved (1) | count (4) |
//	| word 0 | word 1 | ... | word count-1 |
//
// Each word is ceil(msg bits / 8) bytes holding the message value right aligned.
type FrameLayer struct {
	layers.BaseLayer
	message.Format
	Messages []message.Message
}

var FrameLayerType = gopacket.RegisterLayerType(FrameLayerNum,
	gopacket.LayerTypeMetadata{Name: "FrameLayerType", Decoder: gopacket.DecodeFunc(DecodeFrameLayer)})

// LayerType returns the type of the Frame layer in the layer catalog
func (f *FrameLayer) LayerType() gopacket.LayerType {
	return FrameLayerType
}

// WordSize is the number of bytes a single message takes on the wire
func (f *FrameLayer) WordSize() int {
	return int(f.MessageBitWidth+7) / 8
}

// Len is the size of the serialized frame in bytes
func (f *FrameLayer) Len() int {
	return FrameHeaderSize + len(f.Messages)*f.WordSize()
}

// Serialize writes the frame to buf which must be at least Len() bytes
func (f *FrameLayer) Serialize(buf []byte) error {
	buf[0] = uint8(f.MessageBitWidth)
	buf[1] = uint8(f.CodeBitWidth)
	buf[2] = uint8(f.AddressBitWidth)
	buf[3] = 0
	binary.BigEndian.PutUint32(buf[4:8], uint32(len(f.Messages)))
	size := f.WordSize()
	word := make([]byte, 8)
	for i, msg := range f.Messages {
		if uint(msg.Len()) != f.MessageBitWidth {
			return message.ErrLength{Got: msg.Len(), Want: f.MessageBitWidth}
		}
		value, err := msg.Value()
		if err != nil {
			return err
		}
		binary.BigEndian.PutUint64(word, value)
		offset := FrameHeaderSize + i*size
		copy(buf[offset:offset+size], word[8-size:])
	}
	return nil
}

// SerializeTo serializes the frame into bytes and writes the bytes to the SerializeBuffer
func (f *FrameLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.AppendBytes(f.Len())
	if err != nil {
		return err
	}
	return f.Serialize(bytes)
}

func (f *FrameLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < FrameHeaderSize {
		df.SetTruncated()
		return ErrFrame{What: "header is truncated"}
	}
	format, err := message.NewFormat(uint(data[0]), uint(data[1]), uint(data[2]))
	if err != nil {
		return err
	}
	f.Format = format
	count := int(binary.BigEndian.Uint32(data[4:8]))
	size := f.WordSize()
	end := FrameHeaderSize + count*size
	if count < 0 || len(data) < end {
		df.SetTruncated()
		return ErrFrame{What: "payload is truncated"}
	}
	f.BaseLayer = layers.BaseLayer{
		Contents: data[:end],
		Payload:  data[end:],
	}
	f.Messages = make([]message.Message, 0, count)
	word := make([]byte, 8)
	for i := 0; i < count; i++ {
		offset := FrameHeaderSize + i*size
		for j := range word {
			word[j] = 0
		}
		copy(word[8-size:], data[offset:offset+size])
		msg, err := f.EncodeData(binary.BigEndian.Uint64(word))
		if err != nil {
			return ErrFrame{What: err.Error()}
		}
		f.Messages = append(f.Messages, msg)
	}
	return nil
}

func DecodeFrameLayer(data []byte, p gopacket.PacketBuilder) error {
	frame := &FrameLayer{}
	err := frame.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(frame)
	return nil
}

// Pack serializes a message sequence into a frame
func Pack(format message.Format, msgs []message.Message) ([]byte, error) {
	frame := &FrameLayer{Format: format, Messages: msgs}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack decodes a frame produced by Pack
func Unpack(data []byte) (*FrameLayer, error) {
	packet := gopacket.NewPacket(data, FrameLayerType, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return nil, errLayer.Error()
	}
	layer := packet.Layer(FrameLayerType)
	if layer == nil {
		return nil, ErrFrame{What: "no frame layer found"}
	}
	return layer.(*FrameLayer), nil
}
