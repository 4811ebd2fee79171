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

package encode

import (
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

const configExample = `
# go-spi encode config mode=2 kernel_size_per_layer=[3,3,5]
# go-spi encode config --file request.yaml -o binary > request.bin
`

func NewConfigCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "config [NAME=VALUE...]",
		Short:   "Write config registers",
		Example: configExample,
	}
	o := newOptions(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var assignments []encoder.Assignment
		if file != "" {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			assignments, err = command.ParseAssignments(data)
			if err != nil {
				return err
			}
		}
		set, err := command.ParseSet(args)
		if err != nil {
			return err
		}
		assignments = append(assignments, set...)

		enc, err := o.encoder()
		if err != nil {
			return err
		}
		msgs, err := enc.ConfigWrite(assignments)
		if err != nil {
			return err
		}
		return o.write(cmd, enc, msgs)
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "JSON or YAML list of {name, value} assignments, applied before the arguments")
	return cmd
}

func NewPointerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pointer NAME",
		Short: "Read a pointer",
		Args:  cobra.ExactArgs(1),
	}
	o := newOptions(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		enc, err := o.encoder()
		if err != nil {
			return err
		}
		msg, err := enc.PointerRead(args[0])
		if err != nil {
			return err
		}
		return o.write(cmd, enc, []message.Message{msg})
	}
	return cmd
}
