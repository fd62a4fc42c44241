package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	pageHome        = "home.tmpl"
	pageCreatePoint = "create_point.tmpl"
)

// Service is what the handlers need from the point service.
type Service interface {
	LoadPage(ctx context.Context, query models.PageQuery) (*models.Page, error)
	Items(ctx context.Context) ([]models.Item, error)
	States(ctx context.Context) ([]models.State, error)
	Cities(ctx context.Context, stateID int) ([]models.City, error)
	ResolveRegion(ctx context.Context, stateID int) ([]models.State, []models.City, error)
	Locate(ctx context.Context, hint models.PositionHint) models.Coordinates
	Submit(ctx context.Context, sub models.Submission) (models.Delivery, error)
}

// Handler serves the collection point pages and their JSON catalogs.
type Handler struct {
	svc           Service
	log           *slog.Logger
	pages         map[string]*template.Template
	maxUploadSize int64
	timeout       time.Duration
}

// NewHandler parses the embedded templates and returns a ready Handler.
func NewHandler(svc Service, log *slog.Logger, maxUploadSize int64, timeout time.Duration) (*Handler, error) {
	funcs := template.FuncMap{
		"coord": func(value float64) string { return strconv.FormatFloat(value, 'f', -1, 64) },
	}

	pages := make(map[string]*template.Template, 2)
	for _, name := range []string{pageHome, pageCreatePoint} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/base.tmpl", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		svc:           svc,
		log:           log,
		pages:         pages,
		maxUploadSize: maxUploadSize,
		timeout:       timeout,
	}, nil
}

// Routes builds the router of the web server.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(h.log))
	router.Use(middleware.Recoverer)
	if h.timeout > 0 {
		router.Use(middleware.Timeout(h.timeout))
	}

	router.Get("/", h.home)
	router.Get("/create-point", h.createPointForm)
	router.Post("/create-point", h.createPoint)

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowedHeaders: []string{"Accept"},
			MaxAge:         300,
		}))
		r.Use(middleware.GetHead)
		r.Get("/items", h.listItems)
		r.Get("/states", h.listStates)
		r.Get("/states/{id}/cities", h.listCities)
		r.Get("/position", h.locate)
	})

	return router
}

// render executes the base layout of a page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render page", "page", page, "error", err)
	}
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.DebugContext(r.Context(), "Request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
