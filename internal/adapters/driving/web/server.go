// Package web serves the browser UI: login, document creation and the
// learning pages. It is a driving adapter; all behaviour lives in the
// core services it is handed.
package web

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/custodia-labs/specforge/internal/core/ports/driving"
	"github.com/custodia-labs/specforge/internal/logger"
)

// maxUploadSize caps uploaded reference documents.
const maxUploadSize = 20 * 1024 * 1024

// Server is the HTTP front end.
type Server struct {
	app     *fiber.App
	auth    driving.AuthService
	creator driving.CreatorService
	learner driving.LearnerService

	mu         sync.Mutex
	oauthState string
}

// NewServer wires the routes. learner may be nil when no embedding
// provider is configured; the learning pages then report the feature as
// unavailable.
func NewServer(auth driving.AuthService, creator driving.CreatorService, learner driving.LearnerService) *Server {
	s := &Server{
		auth:    auth,
		creator: creator,
		learner: learner,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "specforge",
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    maxUploadSize,
	})

	s.app.Use(recover.New())
	s.app.Use(fiberlogger.New())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/learn", s.handleLearnPage)
	s.app.Get("/about", s.handleAbout)

	s.app.Get("/login", s.handleLogin)
	s.app.Get("/callback", s.handleCallback)
	s.app.Get("/logout", s.handleLogout)

	s.app.Post("/create-document", s.handleCreateDocument)
	s.app.Post("/upload-document", s.handleUploadDocument)
	s.app.Post("/learn-text", s.handleLearnText)
	s.app.Post("/clear-learned-data", s.handleClearLearned)

	s.app.Get("/api/login-status", s.handleLoginStatus)
	s.app.Get("/healthz", s.handleHealthz)
}

// Listen blocks serving HTTP on the given port.
func (s *Server) Listen(port int) error {
	logger.Info("listening on http://localhost:%d", port)
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// newState issues a fresh OAuth state value, replacing any previous one.
func (s *Server) newState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oauthState = state
}

// consumeState checks the callback state against the issued one and
// invalidates it. Single use.
func (s *Server) consumeState(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == "" || state != s.oauthState {
		return false
	}
	s.oauthState = ""
	return true
}
