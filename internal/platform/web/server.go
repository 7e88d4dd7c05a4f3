// Package web exposes 2048 games over a JSON HTTP API and WebSockets.
//
// Routes:
//   - GET    /health
//   - GET    /presets
//   - POST   /games              start a game from a preset or a custom config
//   - GET    /games/{id}         current snapshot
//   - POST   /games/{id}/moves   apply one move
//   - DELETE /games/{id}
//   - GET    /games/{id}/ws      play over a WebSocket
//   - GET    /scores/{preset}    top results
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/game2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	maxSessions     = 10000
	maxBodyBytes    = 4096
	defaultScoreCap = 10
	cleanupInterval = time.Minute
)

var errBadJSON = errors.New("web: malformed request body")

// Server bundles the router, the in-memory games and the score store.
type Server struct {
	r        *chi.Mux
	sessions *SessionStore
	store    *storage.Store
	logger   *log.Logger
	settings config.WebSettings
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
// The store may be nil, in which case results are not recorded.
func New(store *storage.Store, logger *log.Logger, settings config.WebSettings) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	def := config.Default().Web
	if settings.RequestTimeout <= 0 {
		settings.RequestTimeout = def.RequestTimeout
	}
	if settings.GameTTL <= 0 {
		settings.GameTTL = def.GameTTL
	}
	if settings.FinishedTTL <= 0 {
		settings.FinishedTTL = def.FinishedTTL
	}

	s := &Server{
		r:        chi.NewRouter(),
		sessions: NewSessionStore(maxSessions),
		store:    store,
		logger:   logger,
		settings: settings,
	}
	s.upgrader = newUpgrader(settings.AllowedOrigins)

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)

	// WebSockets outlive the request timeout.
	s.r.Get("/games/{id}/ws", s.handleWebSocket)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(settings.RequestTimeout))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.sessions.Len()})
		})
		r.Get("/presets", s.handlePresets)

		r.Route("/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Get("/{id}", s.handleGetGame)
			r.Delete("/{id}", s.handleDeleteGame)
			r.Post("/{id}/moves", s.handleMove)
		})

		r.Get("/scores/{preset}", s.handleScores)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down
// gracefully. Stale games are evicted in the background meanwhile.
func (s *Server) ListenAndServe(ctx context.Context) error {
	reapCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go s.reapSessions(reapCtx, cleanupInterval)

	srv := &http.Server{
		Addr:              s.settings.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.settings.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reapSessions evicts expired games every interval until ctx is done.
func (s *Server) reapSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.CleanupExpired(s.settings.GameTTL, s.settings.FinishedTTL); n > 0 {
				s.logger.Debug("expired games removed", "count", n, "active", s.sessions.Len())
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------ payloads -----------------------------------

type createGameRequest struct {
	Preset string `json:"preset"`
	Config any    `json:"config"`
	Seed   int64  `json:"seed"`
	Player string `json:"player"`
}

// moveRequest carries one move. Direction is a pointer so a missing field
// is rejected instead of meaning "up".
type moveRequest struct {
	Direction *game2048.Direction `json:"direction"`
}

type gameResponse struct {
	ID     string `json:"id"`
	Preset string `json:"preset"`
	game2048.Snapshot
}

type presetResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	game2048.Config
}

type scoreResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"maxTile"`
	Moves     int       `json:"moves"`
	Won       bool      `json:"won"`
	Player    string    `json:"player,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := registry.List()
	out := make([]presetResponse, len(presets))
	for i, p := range presets {
		out[i] = presetResponse{ID: p.ID, Title: p.Title, Description: p.Description, Config: p.Config}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateGame starts a game. An empty body starts the default preset;
// "config" takes precedence over "preset".
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	preset, err := resolvePreset(req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	session, err := s.sessions.Create(preset, req.Seed, req.Player)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.logger.Debug("game created", "id", session.ID, "preset", preset.ID)
	writeJSON(w, http.StatusCreated, gameResponse{
		ID:       session.ID,
		Preset:   preset.ID,
		Snapshot: session.Snapshot(),
	})
}

// resolvePreset picks the preset described by a create request.
func resolvePreset(req createGameRequest) (registry.Preset, error) {
	if req.Config != nil {
		cfg, err := game2048.ParseConfig(req.Config)
		if err != nil {
			return registry.Preset{}, err
		}
		return registry.Custom(cfg), nil
	}
	if req.Preset == "" {
		return registry.Get(registry.DefaultPreset)
	}
	return registry.Get(req.Preset)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{ID: session.ID, Preset: session.Preset.ID, Snapshot: session.Snapshot()})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	dir, err := decodeMove(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	snap, err := s.applyMove(session, dir)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{ID: session.ID, Preset: session.Preset.ID, Snapshot: snap})
}

// decodeMove reads a moveRequest. Unknown or missing directions fail with
// game2048.ErrInvalidDirection, anything else unreadable with errBadJSON.
func decodeMove(r io.Reader) (game2048.Direction, error) {
	var req moveRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, game2048.ErrInvalidDirection) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", errBadJSON, err)
	}
	if req.Direction == nil {
		return 0, fmt.Errorf("%w: missing", game2048.ErrInvalidDirection)
	}
	return *req.Direction, nil
}

// applyMove applies a move, recording the result when the game ends.
// Shared by the HTTP and WebSocket handlers.
func (s *Server) applyMove(session *Session, dir game2048.Direction) (game2048.Snapshot, error) {
	snap, finished, err := session.Move(dir)
	if err != nil {
		return snap, err
	}
	if finished {
		s.recordResult(session, snap)
	}
	return snap, nil
}

// recordResult saves a finished game. Storage failures are logged, not
// returned, since the move itself succeeded.
func (s *Server) recordResult(session *Session, snap game2048.Snapshot) {
	s.logger.Info("game finished",
		"id", session.ID,
		"preset", session.Preset.ID,
		"state", snap.State,
		"score", snap.Score,
	)
	if s.store == nil {
		return
	}
	result := storage.ResultFromSnapshot(session.Preset.ID, session.Player, snap)
	if _, err := s.store.SaveResult(result); err != nil {
		s.logger.Warn("could not save result", "id", session.ID, "error", err)
	}
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := defaultScoreCap
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	out := []scoreResponse{}
	if s.store != nil {
		results, err := s.store.TopScores(chi.URLParam(r, "preset"), limit)
		if err != nil {
			s.logger.Error("top scores", "error", err)
			writeError(w, http.StatusInternalServerError, "db_error", "")
			return
		}
		for i, res := range results {
			out = append(out, scoreResponse{
				Rank:      i + 1,
				Score:     res.Score,
				MaxTile:   res.MaxTile,
				Moves:     res.Moves,
				Won:       res.Won,
				Player:    res.Player,
				CreatedAt: res.CreatedAt,
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- helpers -----------------------------------

// statusFor maps domain errors to HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errBadJSON):
		return http.StatusBadRequest, "bad_json"
	case errors.Is(err, registry.ErrUnknownPreset):
		return http.StatusBadRequest, "unknown_preset"
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable, "too_many_games"
	case errors.Is(err, game2048.ErrGameAlreadyOver):
		return http.StatusConflict, game2048.ErrorCode(err)
	}
	if code := game2048.ErrorCode(err); code != "internal" {
		return http.StatusBadRequest, code
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeError(w, status, code, err.Error())
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
