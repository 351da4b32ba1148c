package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/config"
	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
	"github.com/dgallion1/minitut/internal/tutorial"
)

// Server is the HTTP presenter. Every access to the deck goes through the
// navigation controller.
type Server struct {
	router   chi.Router
	tut      *tutorial.Tutorial
	ctrl     *nav.Controller
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
	cfg      *config.Config
}

// NewServer creates and configures the HTTP server. The controller must be
// running for requests to be served.
func NewServer(tut *tutorial.Tutorial, ctrl *nav.Controller, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		tut:  tut,
		ctrl: ctrl,
		hub:  NewHub(log),
		log:  log,
		cfg:  cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	tut.Events.OnSectionChanged(func(sec *deck.Section) {
		s.hub.Broadcast(newSectionMessage(sec))
	})
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Close disconnects websocket clients.
func (s *Server) Close() {
	s.hub.Close()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleDocument)
	r.Get("/remote.js", s.handleRemoteScript)
	r.Get("/api/state", s.handleState)
	r.Get("/api/toc", s.handleTOC)
	r.Get("/ws", s.handleWebSocket)

	// Control endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ControlKey, s.log))

		r.Post("/api/navigate", s.handleNavigate)
		r.Post("/api/next", s.handleNext)
		r.Post("/api/prev", s.handlePrev)
		r.Post("/api/input/key", s.handleKey)
		r.Post("/api/input/swipe", s.handleSwipe)
		r.Post("/api/toc/toggle", s.handleTOCToggle)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
