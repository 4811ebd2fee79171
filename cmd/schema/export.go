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
	"jinr.ru/greenlab/go-spi/pkg/state"
)

func NewExportCommand() *cobra.Command {
	var schemaPath, dbPath string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Store compiled address tables in the state database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if schemaPath == "" {
				schemaPath = cfg.SchemaPath
			}
			enc, err := command.LoadEncoder(cfg, schemaPath)
			if err != nil {
				return err
			}
			tableState, err := state.NewTableState(cfg.DBPath)
			if err != nil {
				return err
			}
			defer tableState.Close()
			name := command.SchemaName(schemaPath)
			if err := tableState.Save(name, enc.Tables); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tables of %s saved to %s\n", name, cfg.DBPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, SchemaOptionName, "", "Schema file, JSON or YAML")
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", fmt.Sprintf("State database. Default %s", cfg.DBPath))
	return cmd
}

func NewShowCommand() *cobra.Command {
	var dbPath string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print address tables stored in the state database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			tableState, err := state.NewTableState(cfg.DBPath)
			if err != nil {
				return err
			}
			defer tableState.Close()
			entries, err := tableState.Entries(args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %6d %6d  %s\n", e.Namespace, e.A, e.B, e.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", fmt.Sprintf("State database. Default %s", cfg.DBPath))
	return cmd
}
