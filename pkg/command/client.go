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
	"fmt"
	"net/url"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/message"
	"jinr.ru/greenlab/go-spi/pkg/srv"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Api.Address, cfg.Api.Port),
	}
}

func (c *ApiClient) endpoint(format string, v ...interface{}) string {
	return c.ApiPrefix + fmt.Sprintf(format, v...)
}

// check turns a non 200 response into ErrApi carrying the server message
func check(r *req.Resp) error {
	if r.Response().StatusCode != 200 {
		return ErrApi{Status: r.Response().Status, Message: r.String()}
	}
	return nil
}

func messages(r *req.Resp, err error) (*srv.MessagesResp, error) {
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	resp := &srv.MessagesResp{}
	if err := r.ToJSON(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func single(resp *srv.MessagesResp, err error) (message.Message, error) {
	if err != nil {
		return "", err
	}
	if len(resp.Messages) != 1 {
		return "", ErrApi{Status: "200 OK", Message: fmt.Sprintf("expected one message, got %d", len(resp.Messages))}
	}
	return resp.Messages[0], nil
}

// Tables sends request to get the address tables of the served schema
func (c *ApiClient) Tables() (*srv.TablesResp, error) {
	r, err := req.Get(c.endpoint("/tables"))
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	tables := &srv.TablesResp{}
	if err := r.ToJSON(tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// ConfigWrite sends request to build config register writes
func (c *ApiClient) ConfigWrite(assignments []encoder.Assignment) ([]message.Message, error) {
	resp, err := messages(req.Post(c.endpoint("/config/w"), req.BodyJSON(assignments)))
	if err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// PointerRead sends request to build a pointer read
func (c *ApiClient) PointerRead(name string) (message.Message, error) {
	return single(messages(req.Get(c.endpoint("/pointer/r/%s", url.PathEscape(name)))))
}

// MemWrite sends request to build a memory write
func (c *ApiClient) MemWrite(name string, start int, data []uint64) ([]message.Message, error) {
	body := &srv.MemWriteReq{
		Start: start,
		Data:  data,
	}
	resp, err := messages(req.Post(c.endpoint("/mem/w/%s", url.PathEscape(name)), req.BodyJSON(body)))
	if err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// MemRead sends request to build a memory read
func (c *ApiClient) MemRead(name string, start, count int) (message.Message, error) {
	return single(messages(req.Get(c.endpoint("/mem/r/%s", url.PathEscape(name)), req.Param{
		"start": start,
		"count": count,
	})))
}

// Random sends request for random data messages. A zero seed lets the
// server pick one, the seed used is returned with the messages.
func (c *ApiClient) Random(count int, seed int64) (*srv.MessagesResp, error) {
	param := req.Param{"count": count}
	if seed != 0 {
		param["seed"] = seed
	}
	return messages(req.Get(c.endpoint("/random"), param))
}
