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

package srv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
	"jinr.ru/greenlab/go-spi/pkg/schema"
	"jinr.ru/greenlab/go-spi/pkg/state"
)

func testServer(t *testing.T) (*ApiServer, *httptest.Server) {
	enc, err := encoder.New(&schema.Document{
		Bus: schema.Bus{MessageBitWidth: 16, CodeBitWidth: 4, AddressBitWidth: 8},
		Config: []schema.Entry{
			{Width: schema.Scalar{Bits: 2}, Name: "mode"},
			{Width: schema.FixedArray{Bits: 4, Count: 3}, Name: "kernel"},
		},
		Pointers: []schema.Entry{
			{Width: schema.Scalar{Bits: 1}, Name: "load"},
		},
		Memories: []schema.Memory{
			{Name: "weights", NumRows: 10, BitWidth: 16},
		},
	})
	require.NoError(t, err)

	cfg := config.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "tables.db")
	s, err := NewApiServer(context.Background(), cfg, enc, "test")
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func decodeMessages(t *testing.T, resp *http.Response) *MessagesResp {
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := &MessagesResp{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return out
}

func TestTables(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/tables")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tables := &TablesResp{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(tables))
	assert.Equal(t, []ConfigRow{
		{Name: "mode", Start: 0, Slots: 1, Width: "2"},
		{Name: "kernel", Start: 1, Slots: 3, Width: "4[3]"},
	}, tables.Config)
	assert.Equal(t, []PointerRow{{Name: "load", Address: 0}}, tables.Pointers)
	assert.Equal(t, []MemoryRow{{Name: "weights", Code: 1, MaxAddress: 10}}, tables.Memories)
}

func TestConfigWrite(t *testing.T) {
	_, ts := testServer(t)
	body := `[{"name": "mode", "value": 3}, {"name": "kernel", "value": [1, 2]}]`
	resp, err := http.Post(ts.URL+"/api/config/w", "application/json", strings.NewReader(body))
	require.NoError(t, err)

	out := decodeMessages(t, resp)
	assert.Equal(t, []message.Message{
		"0000000000000001",
		"0000000000000011",
		"0000000000001010",
		"0000000000000001",
		"0000000000000010",
	}, out.Messages)
}

func TestConfigWriteUnknownName(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Post(ts.URL+"/api/config/w", "application/json", strings.NewReader(`[{"name": "nope", "value": 1}]`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConfigWriteNegativeValue(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Post(ts.URL+"/api/config/w", "application/json", strings.NewReader(`[{"name": "mode", "value": -1}]`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPointerRead(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/pointer/r/load")
	require.NoError(t, err)

	out := decodeMessages(t, resp)
	assert.Equal(t, []message.Message{"1000000000000001"}, out.Messages)

	resp, err = http.Get(ts.URL + "/api/pointer/r/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMemWriteAndRead(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Post(ts.URL+"/api/mem/w/weights", "application/json",
		strings.NewReader(`{"start": 2, "data": [5, 6, 7]}`))
	require.NoError(t, err)

	out := decodeMessages(t, resp)
	require.Len(t, out.Messages, 4)
	assert.Equal(t, message.Message("0000100000010011"), out.Messages[0])

	resp, err = http.Get(ts.URL + "/api/mem/r/weights?start=2&count=3")
	require.NoError(t, err)
	out = decodeMessages(t, resp)
	assert.Equal(t, []message.Message{"1000100000010011"}, out.Messages)
}

func TestMemWriteOverCapacity(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Post(ts.URL+"/api/mem/w/weights", "application/json",
		strings.NewReader(`{"start": 8, "data": [1, 2, 3]}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMemReadTooManyTransactions(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Get(ts.URL + "/api/mem/r/weights?count=8")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRandomIsReproducible(t *testing.T) {
	_, ts := testServer(t)
	get := func() *MessagesResp {
		resp, err := http.Get(ts.URL + "/api/random?count=5&seed=42")
		require.NoError(t, err)
		return decodeMessages(t, resp)
	}
	first, second := get(), get()
	assert.Equal(t, int64(42), first.Seed)
	assert.Len(t, first.Messages, 5)
	assert.Equal(t, first.Messages, second.Messages)
}

func TestRandomCountLimit(t *testing.T) {
	_, ts := testServer(t)
	for _, count := range []string{"-1", "65537", "4611686018427387904", "x"} {
		resp, err := http.Get(ts.URL + "/api/random?count=" + count)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, count)
	}
}

func TestSwagger(t *testing.T) {
	_, ts := testServer(t)
	resp, err := http.Get(ts.URL + "/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc["swagger"])
}

func TestSaveTables(t *testing.T) {
	s, _ := testServer(t)
	require.NoError(t, s.saveTables())

	tableState, err := state.NewTableState(s.Config.DBPath)
	require.NoError(t, err)
	defer tableState.Close()
	entry, err := tableState.Get("test", "config", "kernel")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), entry.A)
	assert.Equal(t, uint64(3), entry.B)
}
