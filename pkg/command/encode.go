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
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/layers"
	"jinr.ru/greenlab/go-spi/pkg/log"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

const (
	OutputText   = "text"
	OutputBinary = "binary"
)

// LoadEncoder compiles the schema given on the command line, falling back
// to the one set in the config file
func LoadEncoder(cfg *config.Config, schemaPath string) (*encoder.Encoder, error) {
	if schemaPath == "" {
		schemaPath = cfg.SchemaPath
	}
	if schemaPath == "" {
		return nil, ErrArgument{What: "no schema given, use --schema or set schemaPath in " + cfg.Path()}
	}
	log.Debug("Loading schema: %s", schemaPath)
	return encoder.NewFromFile(schemaPath)
}

// ParseAssignments reads a config write request, a JSON or YAML list of
// {name, value} records
func ParseAssignments(data []byte) ([]encoder.Assignment, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}
	var assignments []encoder.Assignment
	if err := json.Unmarshal(j, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ParseSet turns name=value arguments into assignments. A value is a number
// or a list like [1,2,3].
func ParseSet(args []string) ([]encoder.Assignment, error) {
	assignments := make([]encoder.Assignment, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, ErrArgument{What: fmt.Sprintf("expected name=value, got %q", arg)}
		}
		j, err := yaml.YAMLToJSON([]byte(parts[1]))
		if err != nil {
			return nil, err
		}
		a := encoder.Assignment{Name: parts[0]}
		if err := json.Unmarshal(j, &a.Value); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// ParseUints parses data words, decimal or with a 0x/0b/0o prefix
func ParseUints(args []string) ([]uint64, error) {
	result := make([]uint64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(strings.TrimSpace(arg), 0, 64)
		if err != nil {
			return nil, ErrArgument{What: fmt.Sprintf("bad data word %q", arg)}
		}
		result = append(result, v)
	}
	return result, nil
}

// WriteMessages prints one message per line or writes a binary frame
func WriteMessages(out io.Writer, format message.Format, msgs []message.Message, output string) error {
	switch output {
	case OutputText, "":
		for _, m := range msgs {
			if _, err := fmt.Fprintln(out, m); err != nil {
				return err
			}
		}
		return nil
	case OutputBinary:
		frame, err := layers.Pack(format, msgs)
		if err != nil {
			return err
		}
		_, err = out.Write(frame)
		return err
	default:
		return ErrArgument{What: fmt.Sprintf("unknown output %q, must be %s or %s", output, OutputText, OutputBinary)}
	}
}

// DecodeFrame unpacks a binary frame and regroups its messages
func DecodeFrame(in io.Reader) ([]message.Transaction, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	frame, err := layers.Unpack(data)
	if err != nil {
		return nil, err
	}
	log.Debug("Decoded frame: %d messages of %d bits", len(frame.Messages), frame.MessageBitWidth)
	return frame.Format.Parse(frame.Messages)
}

// WriteYAML prints v as YAML
func WriteYAML(out io.Writer, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
