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

package control

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

const (
	FileOptionName  = "file"
	StartOptionName = "start"
	DataOptionName  = "data"
	CountOptionName = "count"
	SeedOptionName  = "seed"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control",
		Short: "Run the API server or send requests to it",
	}
	cmd.AddCommand(NewStartCommand())
	cmd.AddCommand(NewTablesCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewPointerCommand())
	cmd.AddCommand(NewMemWriteCommand())
	cmd.AddCommand(NewMemReadCommand())
	cmd.AddCommand(NewRandomCommand())
	return cmd
}

func newClient() *command.ApiClient {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	return command.NewApiClient(cfg)
}

func printMessages(out io.Writer, msgs ...message.Message) {
	for _, m := range msgs {
		fmt.Fprintln(out, m)
	}
}

func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print address tables of the served schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := newClient().Tables()
			if err != nil {
				return err
			}
			return command.WriteYAML(cmd.OutOrStdout(), tables)
		},
	}
	return cmd
}

func NewConfigCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "config [NAME=VALUE...]",
		Short: "Request config register writes",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			msgs, err := newClient().ConfigWrite(append(assignments, set...))
			if err != nil {
				return err
			}
			printMessages(cmd.OutOrStdout(), msgs...)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, FileOptionName, "", "JSON or YAML list of {name, value} assignments")
	return cmd
}

func NewPointerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pointer NAME",
		Short: "Request a pointer read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := newClient().PointerRead(args[0])
			if err != nil {
				return err
			}
			printMessages(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	return cmd
}

func NewMemWriteCommand() *cobra.Command {
	var start int
	var data []string
	cmd := &cobra.Command{
		Use:   "mem-write NAME",
		Short: "Request a memory write",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := command.ParseUints(data)
			if err != nil {
				return err
			}
			msgs, err := newClient().MemWrite(args[0], start, words)
			if err != nil {
				return err
			}
			printMessages(cmd.OutOrStdout(), msgs...)
			return nil
		},
	}
	cmd.Flags().IntVar(&start, StartOptionName, 0, "First address")
	cmd.Flags().StringSliceVar(&data, DataOptionName, nil, "Words to write. E.g. 1,0x2,0b11")
	return cmd
}

func NewMemReadCommand() *cobra.Command {
	var start, count int
	cmd := &cobra.Command{
		Use:   "mem-read NAME",
		Short: "Request a memory read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := newClient().MemRead(args[0], start, count)
			if err != nil {
				return err
			}
			printMessages(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().IntVar(&start, StartOptionName, 0, "First address")
	cmd.Flags().IntVar(&count, CountOptionName, 1, "Number of words")
	return cmd
}

func NewRandomCommand() *cobra.Command {
	var count int
	var seed int64
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Request random data messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Random(count, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "seed: %d\n", resp.Seed)
			printMessages(cmd.OutOrStdout(), resp.Messages...)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, CountOptionName, 1, "Number of messages")
	cmd.Flags().Int64Var(&seed, SeedOptionName, 0, "Random seed. 0 lets the server pick one")
	return cmd
}
