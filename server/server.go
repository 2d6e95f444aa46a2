// Package server exposes the partial-render HTTP surface: resolving an
// inbound frame identifier to its template fragment and streaming mutation
// batches to connected clients.
//
// Usage:
//
//	svc := server.New(resolver, hub, renderer, nil, logger)
//	svc.RegisterHTTP(router)
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abiiranathan/rex-frames/middleware"
	"github.com/abiiranathan/rex-frames/mutation"
	"github.com/abiiranathan/rex-frames/routing"
)

// Renderer renders one template fragment for a resolved frame request.
// Implementations own template lookup and data loading; the service only
// supplies the resolved template reference and the inbound frame id.
type Renderer interface {
	RenderFrame(ctx context.Context, w io.Writer, template, frameID string) error
}

// Config holds the service configuration.
type Config struct {
	// StreamHeartbeat is the SSE keep-alive interval. Default: 15s.
	StreamHeartbeat time.Duration `json:"stream_heartbeat" yaml:"stream_heartbeat"`
}

func (c *Config) defaults() {
	if c.StreamHeartbeat <= 0 {
		c.StreamHeartbeat = 15 * time.Second
	}
}

// Service serves frame resolution and the mutation stream.
type Service struct {
	resolver *routing.Resolver
	hub      *mutation.Hub
	renderer Renderer
	logger   *slog.Logger
	config   *Config
}

// New creates a Service. A nil config uses defaults.
func New(resolver *routing.Resolver, hub *mutation.Hub, renderer Renderer, cfg *Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: resolver,
		hub:      hub,
		renderer: renderer,
		logger:   logger,
		config:   cfg,
	}
}

// RegisterHTTP mounts the service endpoints on the router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.With(middleware.Extract).Get("/frames/{id}", s.handleFrame)
	r.Get("/frames/stream", s.handleStream)
}

// handleFrame resolves the requested frame id and renders its fragment.
// A resolution miss is not an error: it answers 422 with a structured body
// so the client can fall back to a full-page render.
func (s *Service) handleFrame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = middleware.FrameID(r)
	}

	tmpl, ok := s.resolver.Resolve(id)
	if !ok {
		s.logger.Debug("server: frame not found", "frame_id", id)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":    "frame not found",
			"frame_id": id,
		})
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderFrame(r.Context(), &buf, tmpl, id); err != nil {
		s.logger.Error("server: frame render failed", "frame_id", id, "template", tmpl, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":    "frame render failed",
			"frame_id": id,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(middleware.HeaderFrameID, id)
	w.Write(buf.Bytes())
}

// handleStream serves mutation batches over server-sent events until the
// client disconnects.
func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	sub := s.hub.Subscribe(ctx)
	heartbeat := time.NewTicker(s.config.StreamHeartbeat)
	defer heartbeat.Stop()

	s.logger.Debug("server: stream subscriber connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("server: stream subscriber disconnected", "remote", r.RemoteAddr)
			return

		case <-heartbeat.C:
			io.WriteString(w, ": keep-alive\n\n")
			flusher.Flush()

		case b, open := <-sub:
			if !open {
				return
			}
			data, err := mutation.MarshalBatch(b)
			if err != nil {
				s.logger.Error("server: batch marshal failed", "batch_id", b.ID, "error", err)
				continue
			}
			io.WriteString(w, "event: mutation\ndata: ")
			w.Write(data)
			io.WriteString(w, "\n\n")
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
