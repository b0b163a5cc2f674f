package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/aldzban/ambient/semantic"
	"github.com/aldzban/ambient/server/handler"
)

const (
	defaultPort     = "4040"
	shutdownTimeout = 5 * time.Second
)

// Server serves the resolved schemas of every loaded package over HTTP.
type Server struct {
	app  *fiber.App
	sem  *semantic.Semantic
	port string
}

// New returns an HTTP server with handlers for package listing, resolved
// package documents, the document JSON schema and package diffing.
func New(sem *semantic.Semantic, port string) (*Server, error) {
	if sem == nil {
		return nil, eris.New("server requires a non-nil semantic")
	}
	if port == "" {
		port = defaultPort
	}

	app := fiber.New(fiber.Config{
		Network:               "tcp",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})
	app.Use(cors.New())

	s := &Server{
		app:  app,
		sem:  sem,
		port: port,
	}
	s.setupRoutes()

	return s, nil
}

// Serve serves the application, blocking the calling thread.
// Call this in a new go routine to prevent blocking.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		log.Info().Msgf("Starting HTTP server at port %s", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			serverErr <- eris.Wrap(err, "error starting http server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "server encountered an error")
	case <-ctx.Done():
		if err := s.shutdown(); err != nil {
			return eris.Wrap(err, "error shutting down server")
		}
	}

	return nil
}

func (s *Server) shutdown() error {
	log.Info().Msg("Shutting down server")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return eris.Wrap(err, "error shutting down server")
	}
	log.Info().Msg("Successfully shut down server")
	return nil
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) setupRoutes() {
	// Route: /health
	s.app.Get("/health", handler.GetHealth())

	// Route: /packages/...
	p := s.app.Group("/packages")
	p.Get("/", handler.ListPackages(s.sem))
	p.Get("/schema", handler.GetPackageSchema())
	p.Get("/:id", handler.GetPackage(s.sem))

	// Route: /diff
	s.app.Post("/diff", handler.PostDiff(s.sem))
}
