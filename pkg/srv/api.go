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

// go-spi API
//
// # RESTful APIs to build control bus messages
//
// Schemes: http
// Host: localhost:8003
// Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package srv

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-spi/pkg/address"
	"jinr.ru/greenlab/go-spi/pkg/config"
	"jinr.ru/greenlab/go-spi/pkg/encoder"
	"jinr.ru/greenlab/go-spi/pkg/log"
	"jinr.ru/greenlab/go-spi/pkg/message"
	"jinr.ru/greenlab/go-spi/pkg/state"
)

//go:embed swagger.json
var swaggerJSON []byte

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	encoder    *encoder.Encoder
	schemaName string
	spec       *loads.Document
}

func NewApiServer(ctx context.Context, cfg *config.Config, enc *encoder.Encoder, schemaName string) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.Api.Address, cfg.Api.Port)

	spec, err := loads.Analyzed(json.RawMessage(swaggerJSON), "")
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded API description: %s %s", spec.Spec().Info.Title, spec.Version())

	s := &ApiServer{
		Context:    ctx,
		Config:     cfg,
		encoder:    enc,
		schemaName: schemaName,
		spec:       spec,
	}
	s.configureRouter()
	return s, nil
}

// Handler returns the router with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	return handlers.RecoveryHandler()(handlers.LoggingHandler(log.Writer(), s.Router))
}

// Run saves the address tables when a database is configured and serves
// the API until the context is done.
func (s *ApiServer) Run() error {
	if s.Config.DBPath != "" {
		if err := s.saveTables(); err != nil {
			return err
		}
	}
	log.Info("Starting API server: address: %s port: %d", s.Config.Api.Address, s.Config.Api.Port)
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    fmt.Sprintf("%s:%d", s.Config.Api.Address, s.Config.Api.Port),
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-s.Context.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error while shutting down API server: %s", err)
		}
		return s.Context.Err()
	case err := <-errChan:
		return err
	}
}

func (s *ApiServer) saveTables() error {
	tableState, err := state.NewTableState(s.Config.DBPath)
	if err != nil {
		return err
	}
	defer tableState.Close()
	return tableState.Save(s.schemaName, s.encoder.Tables)
}

func (s *ApiServer) configureRouter() {
	// names may contain '/', match on the escaped path and unescape in nameVar
	s.Router = mux.NewRouter().UseEncodedPath()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/tables", s.handleTables()).Methods("GET")
	subRouter.HandleFunc("/config/w", s.handleConfigWrite()).Methods("POST")
	subRouter.HandleFunc("/pointer/r/{name}", s.handlePointerRead()).Methods("GET")
	subRouter.HandleFunc("/mem/w/{name}", s.handleMemWrite()).Methods("POST")
	subRouter.HandleFunc("/mem/r/{name}", s.handleMemRead()).Methods("GET")
	subRouter.HandleFunc("/random", s.handleRandom()).Methods("GET")
	s.Router.HandleFunc("/swagger.json", s.handleSwagger()).Methods("GET")
	s.Router.Handle("/docs", middleware.Redoc(middleware.RedocOpts{
		BasePath: "/",
		Path:     "docs",
		SpecURL:  "/swagger.json",
		Title:    "go-spi API",
	}, http.NotFoundHandler()))
}

// requestStatus maps builder errors to HTTP status codes
func requestStatus(err error) int {
	var lookupErr address.ErrLookup
	if errors.As(err, &lookupErr) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func nameVar(r *http.Request) (string, error) {
	return url.PathUnescape(mux.Vars(r)["name"])
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while writing response: %s", err)
	}
}

func (s *ApiServer) handleSwagger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(s.spec.Raw()); err != nil {
			log.Error("Error while writing response: %s", err)
		}
	}
}

func (s *ApiServer) handleTables() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := NewTablesResp(s.encoder.Tables)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, resp)
	}
}

func (s *ApiServer) handleConfigWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfigWriteReq
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling config write request: %d assignments", len(req))

		msgs, err := s.encoder.ConfigWrite(req)
		if err != nil {
			http.Error(w, err.Error(), requestStatus(err))
			return
		}
		writeJSON(w, &MessagesResp{Messages: msgs})
	}
}

func (s *ApiServer) handlePointerRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := nameVar(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling pointer read request: name: %s", name)

		msg, err := s.encoder.PointerRead(name)
		if err != nil {
			http.Error(w, err.Error(), requestStatus(err))
			return
		}
		writeJSON(w, &MessagesResp{Messages: []message.Message{msg}})
	}
}

func (s *ApiServer) handleMemWrite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := nameVar(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req := &MemWriteReq{}

		err = json.NewDecoder(r.Body).Decode(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling mem write request: name: %s start: %d size: %d", name, req.Start, len(req.Data))

		msgs, err := s.encoder.MemoryWrite(name, req.Data, req.Start)
		if err != nil {
			http.Error(w, err.Error(), requestStatus(err))
			return
		}
		writeJSON(w, &MessagesResp{Messages: msgs})
	}
}

func (s *ApiServer) handleMemRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := nameVar(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		query := r.URL.Query()

		start := 0
		if query.Get("start") != "" {
			parsed, err := strconv.Atoi(query.Get("start"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			start = parsed
		}
		count, err := strconv.Atoi(query.Get("count"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Handling mem read request: name: %s start: %d count: %d", name, start, count)

		msg, err := s.encoder.MemoryRead(name, start, count)
		if err != nil {
			http.Error(w, err.Error(), requestStatus(err))
			return
		}
		writeJSON(w, &MessagesResp{Messages: []message.Message{msg}})
	}
}

func (s *ApiServer) handleRandom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		count, err := strconv.Atoi(query.Get("count"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		seed := time.Now().UnixNano()
		if query.Get("seed") != "" {
			seed, err = strconv.ParseInt(query.Get("seed"), 10, 64)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		msgs, err := s.encoder.RandomData(rand.New(rand.NewSource(seed)), count)
		if err != nil {
			http.Error(w, err.Error(), requestStatus(err))
			return
		}
		writeJSON(w, &MessagesResp{Seed: seed, Messages: msgs})
	}
}
