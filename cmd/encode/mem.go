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
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/log"
	"jinr.ru/greenlab/go-spi/pkg/message"
)

func NewMemWriteCommand() *cobra.Command {
	var start int
	var data []string
	cmd := &cobra.Command{
		Use:   "mem-write NAME",
		Short: "Write words to a memory region",
		Args:  cobra.ExactArgs(1),
	}
	o := newOptions(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		words, err := command.ParseUints(data)
		if err != nil {
			return err
		}
		enc, err := o.encoder()
		if err != nil {
			return err
		}
		msgs, err := enc.MemoryWrite(args[0], words, start)
		if err != nil {
			return err
		}
		return o.write(cmd, enc, msgs)
	}
	cmd.Flags().IntVar(&start, StartOptionName, 0, "First address")
	cmd.Flags().StringSliceVar(&data, DataOptionName, nil, "Words to write. E.g. 1,0x2,0b11")
	return cmd
}

func NewMemReadCommand() *cobra.Command {
	var start, count int
	cmd := &cobra.Command{
		Use:   "mem-read NAME",
		Short: "Read words from a memory region",
		Args:  cobra.ExactArgs(1),
	}
	o := newOptions(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		enc, err := o.encoder()
		if err != nil {
			return err
		}
		msg, err := enc.MemoryRead(args[0], start, count)
		if err != nil {
			return err
		}
		return o.write(cmd, enc, []message.Message{msg})
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
		Short: "Generate random data messages",
	}
	o := newOptions(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		enc, err := o.encoder()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed(SeedOptionName) {
			seed = time.Now().UnixNano()
		}
		log.Info("Random data seed: %d", seed)
		msgs, err := enc.RandomData(rand.New(rand.NewSource(seed)), count)
		if err != nil {
			return err
		}
		return o.write(cmd, enc, msgs)
	}
	cmd.Flags().IntVar(&count, CountOptionName, 1, "Number of messages")
	cmd.Flags().Int64Var(&seed, SeedOptionName, 0, "Random seed. Default is the current time")
	return cmd
}
