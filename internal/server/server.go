// Package server is the auxiliary HTTP service: it runs the interval jobs,
// serves the prepared collections and relays admin chart rows to the
// backend's direct-insert endpoint.
package server

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/cache"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/scheduler"
	"github.com/gofiber/fiber/v2"
)

// Backend is the subset of api.Client the chart relay needs.
type Backend interface {
	Post(ctx context.Context, path string, query url.Values, body any) (*api.Envelope, error)
}

type Preparer interface {
	Snapshot(ctx context.Context, force bool) (*cache.Snapshot, error)
}

type Jobs interface {
	Stats() []scheduler.Stats
}

type Deps struct {
	Backend  Backend
	Preparer Preparer
	Jobs     Jobs
	Log      *report.Logger
}

type Server struct {
	app     *fiber.App
	deps    Deps
	port    int
	started time.Time
}

func New(port int, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = report.Discard()
	}
	s := &Server{
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		deps:    deps,
		port:    port,
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/status", s.handleStatus)
	s.app.Get("/collections", s.handleCollections)
	s.app.Post("/prepare", s.handlePrepare)
	s.app.Post("/direct-db-insert/admin-chart", s.handleAdminChart)
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	s.deps.Log.Success("Auxiliary service listening on http://localhost:%d", s.port)
	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(fiber.Map{"EC": 0, "EM": message, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"EC": "ServerError", "EM": message})
}
