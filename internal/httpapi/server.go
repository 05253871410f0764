// Package httpapi exposes the task store and timers over HTTP.
package httpapi

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/runoshun/tally/internal/app"
	"github.com/runoshun/tally/internal/domain"
)

// Options configures the server.
type Options struct {
	AccessLog io.Writer // Request log destination; nil disables request logging
}

// Server is the HTTP API server.
type Server struct {
	app       *fiber.App
	container *app.Container
}

// New creates a Server with all routes registered.
func New(c *app.Container, opts Options) *Server {
	s := &Server{container: c}
	s.app = fiber.New(fiber.Config{
		AppName:               "tally",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	if opts.AccessLog != nil {
		s.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
			Output: opts.AccessLog,
		}))
	}

	s.setupRoutes()
	return s
}

// App returns the underlying fiber app (for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.container.Logger.Info("", "server", "listening on "+addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and flushes running timers.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.app.ShutdownWithContext(ctx)
	return errors.Join(err, s.container.Timers().StopAll(ctx))
}

func (s *Server) setupRoutes() {
	h := &handlers{c: s.container}

	s.app.Get("/health", h.health)

	api := s.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Get("/", h.listTasks)
	tasks.Post("/", h.createTask)
	tasks.Get("/:id", h.getTask)
	tasks.Put("/:id", h.updateTask)
	tasks.Delete("/:id", h.deleteTask)
	tasks.Post("/:id/toggle", h.toggleTask)
	tasks.Post("/:id/done", h.completeTask)
	tasks.Get("/:id/timer", h.showTimer)
	tasks.Post("/:id/timer/:action", h.controlTimer)

	api.Get("/summary/:date", h.summary)
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorHandler maps domain errors to status codes.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code, kind := statusFor(err)
	if code == fiber.StatusInternalServerError || code == fiber.StatusInsufficientStorage {
		s.container.Logger.Error("", "server", c.Method()+" "+c.Path()+": "+err.Error())
	}
	return c.Status(code).JSON(ErrorResponse{Error: kind, Message: err.Error()})
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, "request_error"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAmbiguousRef),
		errors.Is(err, domain.ErrUnknownFormat):
		return fiber.StatusBadRequest, "invalid_request"
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrIndexOutOfRange):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInsufficientStorage, "storage_unavailable"
	}
	return fiber.StatusInternalServerError, "internal_error"
}
