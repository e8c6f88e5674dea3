package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/dfsm"
	"github.com/aretw0/dfsm/internal/dto"
	"github.com/aretw0/dfsm/internal/logging"
	"github.com/aretw0/dfsm/internal/presentation/graph"
	"github.com/aretw0/dfsm/pkg/catalog"
	"github.com/aretw0/dfsm/pkg/codec"
	"github.com/aretw0/dfsm/pkg/domain"
	"github.com/aretw0/dfsm/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodySize bounds request bodies (machine documents and inputs).
const maxBodySize = 1 << 20

// Watcher emits the name of a machine whenever its source changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Server exposes a machine catalog over HTTP.
type Server struct {
	Catalog *catalog.Catalog
	Metrics *observability.Metrics
	Watcher Watcher
	Logger  *slog.Logger
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics records every run and serves GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithWatcher enables GET /events, streaming source changes as SSE.
func WithWatcher(w Watcher) Option {
	return func(s *Server) {
		s.Watcher = w
	}
}

// NewHandler creates a new HTTP handler for the catalog.
func NewHandler(c *catalog.Catalog, opts ...Option) http.Handler {
	s := &Server{
		Catalog: c,
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/validate", s.Validate)
	r.Get("/machines", s.ListMachines)
	r.Route("/machines/{name}", func(r chi.Router) {
		r.Get("/", s.GetMachine)
		r.Put("/", s.PutMachine)
		r.Delete("/", s.DeleteMachine)
		r.Post("/run", s.RunMachine)
		r.Post("/accepts", s.AcceptsMachine)
		r.Get("/graph", s.GetGraph)
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}
	if s.Watcher != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.Logger)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      "dfsm-http",
		"version":  strings.TrimSpace(dfsm.Version),
		"writable": s.Catalog.Writable(),
	}, s.Logger)
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Catalog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries, s.Logger)
}

// GetMachine handles the GET /machines/{name} request.
// The stored document is returned as JSON, or as YAML with ?format=yaml.
// Any other format is a 400.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	format := codec.Format(r.URL.Query().Get("format"))
	if format != "" && format != codec.FormatJSON && format != codec.FormatYAML {
		http.Error(w, "Unsupported document format", http.StatusBadRequest)
		return
	}

	name := chi.URLParam(r, "name")
	_, doc, err := s.Catalog.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if format == codec.FormatYAML {
		data, err := codec.Marshal(doc, codec.FormatYAML)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
		return
	}
	writeJSON(w, http.StatusOK, doc, s.Logger)
}

// PutMachine handles the PUT /machines/{name} request.
func (s *Server) PutMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	if _, err := s.Catalog.Put(r.Context(), name, doc); err != nil {
		s.writeError(w, err)
		return
	}
	doc.Name = name
	writeJSON(w, http.StatusOK, doc.Summarize(), s.Logger)
}

// DeleteMachine handles the DELETE /machines/{name} request.
func (s *Server) DeleteMachine(w http.ResponseWriter, r *http.Request) {
	if err := s.Catalog.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate handles the POST /validate request. Validation failures are
// reported with 422 and the error kind; nothing is stored.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	if _, err := doc.Build(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ValidateResponse{Error: dto.NewError(err)}, s.Logger)
		return
	}
	summary := doc.Summarize()
	writeJSON(w, http.StatusOK, dto.ValidateResponse{Valid: true, Summary: &summary}, s.Logger)
}

// RunMachine handles the POST /machines/{name}/run request.
func (s *Server) RunMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}
	def, err := s.Catalog.Machine(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	runID := uuid.NewString()
	engine := s.engine(runID)
	input := codec.NormalizeSymbols(req.Input)

	var res *domain.Result[string]
	if req.Outputs {
		res, err = engine.Trace(def, input)
	} else {
		res, err = engine.Run(def, input)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := dto.NewRunResponse(name, res)
	resp.RunID = runID
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

// AcceptsMachine handles the POST /machines/{name}/accepts request.
func (s *Server) AcceptsMachine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	req, ok := s.decodeRunRequest(w, r)
	if !ok {
		return
	}
	def, err := s.Catalog.Machine(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	accepted, err := s.engine(uuid.NewString()).Accepts(def, codec.NormalizeSymbols(req.Input))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AcceptsResponse{Machine: name, Accepted: accepted}, s.Logger)
}

// GetGraph handles the GET /machines/{name}/graph request.
// ?format=dot selects Graphviz (default Mermaid); ?trace=a,b,c highlights the
// states visited by that input.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.Catalog.Machine(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if raw := r.URL.Query().Get("trace"); raw != "" {
		trace := strings.Split(raw, ",")
		if err := dto.CheckInput(trace); err != nil {
			writeJSON(w, http.StatusBadRequest, dto.NewError(err), s.Logger)
			return
		}
		res, err := s.engine(uuid.NewString()).Run(def, codec.NormalizeSymbols(trace))
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.OverlayFromTrace(res.Trace)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	switch r.URL.Query().Get("format") {
	case "", "mermaid":
		io.WriteString(w, graph.GenerateMermaid(def, overlay))
	case "dot":
		io.WriteString(w, graph.GenerateDOT(def, overlay))
	default:
		http.Error(w, "Unsupported graph format", http.StatusBadRequest)
	}
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	events, err := s.Watcher.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", name)
			flusher.Flush()
		}
	}
}

func (s *Server) engine(runID string) *dfsm.Engine[string, string] {
	logger := s.Logger.With("run_id", runID)
	hooks := observability.LogHooks(logger)
	if s.Metrics != nil {
		hooks = observability.Combine(hooks, s.Metrics.Hooks())
	}
	return dfsm.New[string, string](dfsm.WithLogger(logger), dfsm.WithLifecycleHooks(hooks))
}

func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*codec.Document, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("failed to read request body", "err", err)
		return nil, false
	}

	format := codec.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = codec.FormatYAML
	}
	doc, err := codec.Unmarshal(data, format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.NewError(err), s.Logger)
		s.Logger.Warn("invalid machine document", "err", err)
		return nil, false
	}
	return doc, true
}

func (s *Server) decodeRunRequest(w http.ResponseWriter, r *http.Request) (*dto.RunRequest, bool) {
	var req dto.RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("invalid run request", "err", err)
		return nil, false
	}
	if err := dto.CheckInput(req.Input); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.NewError(err), s.Logger)
		s.Logger.Warn("run input rejected", "err", err, "length", len(req.Input))
		return nil, false
	}
	return &req, true
}

// writeError maps err to a status code: 404 for unknown machines, 405 for
// writes on a read-only catalog, 422 for construction and execution errors.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrMachineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrReadOnly):
		status = http.StatusMethodNotAllowed
	case errors.Is(err, domain.ErrConstruction), errors.Is(err, domain.ErrExecution):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, dto.NewError(err), s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
