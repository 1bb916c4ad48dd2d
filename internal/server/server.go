// Package server provides the HTTP JSON API around the master-sheet optimizer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"k8s.io/klog/v2"

	"github.com/piwi3910/SheetFit/internal/engine"
	"github.com/piwi3910/SheetFit/internal/model"
	"github.com/piwi3910/SheetFit/internal/project"
)

// Config holds server configuration
type Config struct {
	App        model.AppConfig
	Inventory  model.Inventory
	Selections *project.JobSelectionStore
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	validate   *validator.Validate

	app      model.AppConfig
	settings engine.OptimizerSettings

	mu         sync.RWMutex
	inventory  model.Inventory
	selections *project.JobSelectionStore
}

// New creates a new server instance
func New(cfg Config) *Server {
	app := cfg.App.Normalize()
	s := &Server{
		validate:   validator.New(),
		app:        app,
		settings:   engine.SettingsFromConfig(app),
		inventory:  cfg.Inventory,
		selections: cfg.Selections,
	}

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/optimize", s.handleOptimize)
	api.HandleFunc("POST /api/v1/optimize/batch", s.handleOptimizeBatch)
	api.HandleFunc("POST /api/v1/optimize/export", s.handleOptimizeExport)
	api.HandleFunc("POST /api/v1/compare", s.handleCompare)
	api.HandleFunc("POST /api/v1/pack", s.handlePack)
	api.HandleFunc("GET /api/v1/inventory", s.handleInventory)
	api.HandleFunc("GET /api/v1/jobs/{id}/selection", s.handleGetSelection)
	api.HandleFunc("POST /api/v1/jobs/{id}/selection", s.handleSaveSelection)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/api/", limiter(api, app.MaxConcurrent))

	s.handler = withRequestID(withLogging(withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// SetInventory swaps the inventory used when a request brings no candidates.
func (s *Server) SetInventory(inv model.Inventory) {
	s.mu.Lock()
	s.inventory = inv
	s.mu.Unlock()
}

func (s *Server) candidates() []model.SheetCandidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory.Candidates()
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}
	klog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	klog.Info("Server stopped")
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		klog.Errorf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, reqid, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message, "request_id": reqid})
}

// werr logs err and answers the client with the status it maps to. It
// reports whether an error was written.
func (s *Server) werr(w http.ResponseWriter, err error, msg string) bool {
	if err == nil {
		return false
	}

	reqid := ""
	if x, ok := err.(errid); ok {
		reqid = x.id()
		if debugEnabled() {
			klog.Errorf("%v\t%+v", reqid, x.err)
		} else {
			klog.Errorf("%v\t%v", reqid, x.err)
		}
	} else {
		klog.Errorf("%v", err)
	}

	s.errorResponse(w, HTTPStatus(err), reqid, msg)
	return true
}
