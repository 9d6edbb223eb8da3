/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ledgerly/internal/api"
	"ledgerly/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Server exposes the LedgerService over the action-dispatched JSON endpoint
type Server struct {
	ledger  *api.LedgerService
	cfg     models.ServerConfig
	actions map[string]action
}

type action struct {
	method string
	handle http.HandlerFunc
}

func New(ledger *api.LedgerService, cfg models.ServerConfig) *Server {
	s := &Server{ledger: ledger, cfg: cfg}
	s.actions = map[string]action{
		"record":        {method: http.MethodPost, handle: s.recordTransaction},
		"update_status": {method: http.MethodPost, handle: s.updateTransactionStatus},
		"history":       {method: http.MethodGet, handle: s.getTransactionHistory},
		"pending":       {method: http.MethodGet, handle: s.getPendingTransactions},
		"summary":       {method: http.MethodGet, handle: s.getTransactionSummary},
	}
	return s
}

// Handler builds the router with the middleware chain applied
func (s *Server) Handler() http.Handler {
	origins := s.cfg.CorsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		OptionsSuccessStatus: http.StatusOK,
	})

	r := chi.NewRouter()
	r.Use(requestId)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler.Handler)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", s.health)
	r.HandleFunc("/transaction_api", s.dispatch)
	r.HandleFunc("/transaction_api.php", s.dispatch)
	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	zap.L().Info("HTTP server stopped")
	return nil
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost:
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := r.URL.Query().Get("action")
	a, ok := s.actions[name]
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if r.Method != a.method {
		w.Header().Set("Allow", a.method)
		s.writeLedgerError(w, r, api.MethodNotAllowedError(fmt.Sprintf("Action %s requires %s", name, a.method)))
		return
	}
	a.handle(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.HealthCheck(r.Context()); err != nil {
		zap.L().Error("Health check failed", zap.String("request_id", requestIdFrom(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: "ok"})
}
