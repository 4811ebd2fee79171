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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-spi/pkg/log"
)

func TestPersistLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	cfg.SchemaPath = "/tmp/schema.json"
	cfg.Api.Port = 9000
	require.NoError(t, cfg.Persist(false))

	loaded := NewDefaultConfig()
	loaded.SetPath(path)
	require.NoError(t, loaded.LoadConfig())
	assert.Equal(t, "/tmp/schema.json", loaded.SchemaPath)
	assert.Equal(t, 9000, loaded.Api.Port)
	assert.Equal(t, DefaultApiAddress, loaded.Api.Address)
	assert.Equal(t, DefaultLogLevel, loaded.LogLevel)
}

func TestPersistNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0644))

	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	err := cfg.Persist(false)
	var exists ErrConfigFileExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, path, exists.Path)

	require.NoError(t, cfg.Persist(true))
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetPath(filepath.Join(t.TempDir(), "missing"))
	cfg.Load()
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultApiPort, cfg.Api.Port)
}

func TestLoadBrokenFileWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed\n"), 0644))

	out := &bytes.Buffer{}
	log.Init(out, "warning")
	defer log.Init(os.Stderr, DefaultLogLevel)

	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	cfg.Load()
	assert.Contains(t, out.String(), path)
	assert.Equal(t, DefaultApiPort, cfg.Api.Port)

	out.Reset()
	cfg.SetPath(filepath.Join(t.TempDir(), "missing"))
	cfg.Load()
	assert.Empty(t, out.String())
}
