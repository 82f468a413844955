package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"home-panel/internal/domain/model"
	"home-panel/internal/domain/service"
	"home-panel/internal/ports"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	panel   ports.PanelPort
	metrics http.Handler
	logger  *slog.Logger
}

type stateResponse struct {
	model.Snapshot
	Lines  []string      `json:"lines"`
	Prompt *model.Prompt `json:"prompt,omitempty"`
	Alert  *model.Alert  `json:"alert,omitempty"`
}

func NewServer(panel ports.PanelPort, metrics http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		panel:   panel,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleScreen).Methods("GET")
	r.HandleFunc("/panel", s.handlePanelPage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods("GET")
	api.HandleFunc("/devices/{device}/toggle", s.handleToggle).Methods("POST")
	api.HandleFunc("/prompt", s.handlePrompt).Methods("GET")
	api.HandleFunc("/prompt/{id}/{answer:yes|no}", s.handleAnswer).Methods("POST")
	api.HandleFunc("/motion/reset", s.handleMotionReset).Methods("POST")
	api.HandleFunc("/alert/dismiss", s.handleAlertDismiss).Methods("POST")
	return r
}

// Handler is the router wrapped with access logging.
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(slogWriter{s.logger}, s.Router())
}

// ListenAndServe serves until ctx is cancelled, then drains for a few seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http_listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, line := range s.panel.Snapshot().Lines() {
		fmt.Fprintln(w, line)
	}
	if prompt, ok := s.panel.Pending(); ok {
		fmt.Fprintf(w, "\n[%s] %s\n", prompt.Title, prompt.Message)
		fmt.Fprintf(w, "POST /api/prompt/%s/yes | /no\n", prompt.ID)
	}
	if alert, ok := s.panel.Alert(); ok {
		fmt.Fprintf(w, "\n[%s] %s\n", alert.Title, alert.Message)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.panel.Snapshot()
	resp := stateResponse{Snapshot: snap, Lines: snap.Lines()}
	if prompt, ok := s.panel.Pending(); ok {
		resp.Prompt = &prompt
	}
	if alert, ok := s.panel.Alert(); ok {
		resp.Alert = &alert
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleToggle accepts the tap and dispatches in the background; failures
// surface through the alert, not the response.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	device, err := model.ParseDevice(mux.Vars(r)["device"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := s.panel.Toggle(ctx, device); err != nil {
			s.logger.Debug("toggle_failed", "device", device, "error", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"device": string(device), "status": "accepted"})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	prompt, ok := s.panel.Pending()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, accept := vars["id"], vars["answer"] == "yes"
	if prompt, ok := s.panel.Pending(); !ok || prompt.ID != id {
		http.Error(w, service.ErrNoPendingPrompt.Error(), http.StatusNotFound)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	go func() {
		if err := s.panel.Answer(ctx, id, accept); err != nil {
			s.logger.Warn("prompt_answer_failed", "prompt_id", id, "error", err)
		}
	}()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleMotionReset(w http.ResponseWriter, r *http.Request) {
	s.panel.ResetMotion()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAlertDismiss(w http.ResponseWriter, r *http.Request) {
	s.panel.DismissAlert()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// slogWriter feeds access log lines into the structured logger.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Info("http_access", "line", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
