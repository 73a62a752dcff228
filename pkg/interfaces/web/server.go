package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vsinha/receiptaging/pkg/application/services"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

//go:embed templates/*.html
var templateFS embed.FS

// MaxUploadBytes bounds the size of an uploaded workbook
const MaxUploadBytes = 32 << 20

// Server serves the upload, preview and download pages
type Server struct {
	app       *fiber.App
	service   *services.ReportService
	store     repositories.ReportRepository
	templates *template.Template
	today     func() entities.Date
}

// Option configures a Server
type Option func(*Server)

// WithToday overrides the default reference date offered by the upload form
func WithToday(today func() entities.Date) Option {
	return func(s *Server) {
		s.today = today
	}
}

// WithRequestLog enables fiber's request logger
func WithRequestLog() Option {
	return func(s *Server) {
		s.app.Use(logger.New())
	}
}

// NewServer creates a server backed by the report service and store
func NewServer(
	service *services.ReportService,
	store repositories.ReportRepository,
	opts ...Option,
) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		service:   service,
		store:     store,
		templates: tmpl,
		today:     entities.Today,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "Receipt Aging Report",
		BodyLimit:             MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())

	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Post("/reports", s.handleCreateReport)
	s.app.Get("/reports/:id/download", s.handleDownload)
}

// App exposes the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("📊 Receipt aging server listening on %s", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("Shutting down server...")
		if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

// handleError renders every failure as an HTML error page
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code, message := classify(err)
	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	}

	c.Status(code)
	c.Type("html", "utf-8")
	return s.templates.ExecuteTemplate(c, "error.html", errorPage{
		Status:  code,
		Title:   statusTitle(code),
		Message: message,
	})
}

// classify maps an error to a status code and a message for the user
func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	var missingInput *entities.MissingInputError
	var missingColumn *entities.MissingColumnError
	var emptyResult *entities.EmptyResultError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.As(err, &missingInput):
		return fiber.StatusBadRequest, missingInput.Error()
	case errors.As(err, &missingColumn):
		return fiber.StatusUnprocessableEntity, missingColumn.Error()
	case errors.As(err, &emptyResult):
		return fiber.StatusUnprocessableEntity, emptyResult.Error()
	case errors.Is(err, repositories.ErrReportNotFound):
		return fiber.StatusNotFound, "This report is no longer available. Upload the file again."
	default:
		return fiber.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", err)
	}
}

func statusTitle(code int) string {
	switch {
	case code == fiber.StatusNotFound:
		return "Not found"
	case code < fiber.StatusInternalServerError:
		return "Cannot process this file"
	default:
		return "Something went wrong"
	}
}
