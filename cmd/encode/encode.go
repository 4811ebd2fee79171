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
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

const (
	SchemaOptionName = "schema"
	OutputOptionName = "output"
	FileOptionName   = "file"
	StartOptionName  = "start"
	DataOptionName   = "data"
	CountOptionName  = "count"
	SeedOptionName   = "seed"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build bus messages locally from a schema",
	}
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewPointerCommand())
	cmd.AddCommand(NewMemWriteCommand())
	cmd.AddCommand(NewMemReadCommand())
	cmd.AddCommand(NewRandomCommand())
	return cmd
}

// options are the flags shared by all encode commands
type options struct {
	*config.Config
	schemaPath string
	output     string
}

func newOptions(cmd *cobra.Command) *options {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	o := &options{Config: cfg}
	cmd.Flags().StringVar(&o.schemaPath, SchemaOptionName, "", "Schema file, JSON or YAML")
	cmd.Flags().StringVarP(&o.output, OutputOptionName, "o", command.OutputText,
		fmt.Sprintf("Output format. One of: %s, %s", command.OutputText, command.OutputBinary))
	return o
}

func (o *options) encoder() (*encoder.Encoder, error) {
	return command.LoadEncoder(o.Config, o.schemaPath)
}

func (o *options) write(cmd *cobra.Command, enc *encoder.Encoder, msgs []message.Message) error {
	return command.WriteMessages(cmd.OutOrStdout(), enc.Format, msgs, o.output)
}
