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

package schema

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/config"
)

func NewAddressesCommand() *cobra.Command {
	var schemaPath string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Print config, pointer and memory tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := command.LoadEncoder(cfg, schemaPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config (%d addresses)\n", enc.Config.Size())
			for _, p := range enc.Config.Placements() {
				fmt.Fprintf(out, "  %5d  %-12s %s\n", p.Start, p.Width, p.Name)
			}
			fmt.Fprintln(out, "pointers")
			for _, name := range enc.Pointers.Names() {
				addr, err := enc.Pointers.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  %5d  %s\n", addr, name)
			}
			fmt.Fprintln(out, "memories")
			for _, r := range enc.Memories.Regions() {
				fmt.Fprintf(out, "  code %2d  max %6d  %s\n", r.BusCode(), r.MaxAddress, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, SchemaOptionName, "", "Schema file, JSON or YAML")
	return cmd
}

func NewLayoutCommand() *cobra.Command {
	var schemaPath string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print every config slot with its address and bit width",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := command.LoadEncoder(cfg, schemaPath)
			if err != nil {
				return err
			}
			for _, c := range enc.Config.Layout() {
				fmt.Fprintf(cmd.OutOrStdout(), "%5d  %3d  %s\n", c.Address, c.Bits, c.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, SchemaOptionName, "", "Schema file, JSON or YAML")
	return cmd
}
