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

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-spi/pkg/command"
	"jinr.ru/greenlab/go-spi/pkg/config"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
	SchemaOptionName  = "schema"
	DBOptionName      = "db"
)

func NewStartCommand() *cobra.Command {
	var address, schemaPath, dbPath string
	var port int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.Api.Address = address
			}
			if port != 0 {
				cfg.Api.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if schemaPath == "" {
				schemaPath = cfg.SchemaPath
			}
			if schemaPath == "" {
				return command.ErrArgument{What: "no schema given, use --schema or set schemaPath in " + cfg.Path()}
			}
			return command.StartApiServer(cfg, schemaPath)
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. E.g. %s", config.DefaultApiAddress))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port number to bind. E.g. %d", config.DefaultApiPort))
	cmd.Flags().StringVar(&schemaPath, SchemaOptionName, "", "Schema file, JSON or YAML")
	cmd.Flags().StringVar(&dbPath, DBOptionName, "", "State database the tables are saved to on start")

	return cmd
}
