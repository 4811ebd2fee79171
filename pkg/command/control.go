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
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/srv"
)

// SchemaName is the key the address tables of a schema file are stored under
func SchemaName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StartApiServer compiles the schema and serves it until interrupted
func StartApiServer(cfg *config.Config, schemaPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc, err := encoder.NewFromFile(schemaPath)
	if err != nil {
		return err
	}

	s, err := srv.NewApiServer(ctx, cfg, enc, SchemaName(schemaPath))
	if err != nil {
		return err
	}
	err = s.Run()
	if err == context.Canceled {
		return nil
	}
	return err
}
