package spectate

import (
	"classic-snake/game/types"
	"classic-snake/logger"
	"classic-snake/store"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	defaultRecent = 10
	maxRecent     = 100
)

// Server exposes the spectator feed and score history.
type Server struct {
	ctx      context.Context
	hub      *Hub
	store    store.Store
	log      *logger.Logger
	upgrader websocket.Upgrader
}

// NewServer builds a server whose connections live as long as ctx.
func NewServer(ctx context.Context, hub *Hub, st store.Store, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		ctx:   ctx,
		hub:   hub,
		store: st,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// spectators are read-only, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.serveWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.state)
		r.Get("/stats", s.stats)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status":     "ok",
				"spectators": s.hub.Spectators(),
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until the server context is done.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Infof("spectator server listening on %s", addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "spectator server")
	case <-s.ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "spectator shutdown")
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		s.log.Debugf("websocket upgrade: %v", err)
		return
	}
	client := NewClient(s.hub, conn)
	if !client.Register(s.ctx) {
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump(s.ctx)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	latest := s.hub.Latest()
	if latest == nil {
		respondError(w, http.StatusServiceUnavailable, "no game state yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(latest)
}

type statsResponse struct {
	Summary store.Summary      `json:"summary"`
	Recent  []types.GameRecord `json:"recent"`
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecent
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecent)
	}

	summary, err := s.store.Summary(r.Context())
	if err != nil {
		s.log.Errorf("stats summary: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	recent, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.log.Errorf("stats recent: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load stats")
		return
	}
	if recent == nil {
		recent = []types.GameRecord{}
	}
	respondJSON(w, http.StatusOK, statsResponse{Summary: summary, Recent: recent})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are out, an encode error has nowhere to go
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
