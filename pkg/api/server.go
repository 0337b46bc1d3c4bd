// Package api dataprov REST and SOAP API
//
// @title           dataprov API
// @version         1.0.0
// @description     Tabular record providers for finance and transport data plus a SOAP patient records service.
// @host            localhost:8080
// @BasePath        /
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ssargent/dataprov/pkg/model"
	"github.com/swaggo/swag"
)

// Server holds the API server state
type Server struct {
	config    ServerConfig
	resources []Resource
	patients  PatientService
	metrics   *Metrics
	logger    *slog.Logger
	started   time.Time
}

// NewServer creates a new API server. patients may be nil to leave the SOAP
// endpoint out.
func NewServer(config ServerConfig, patients PatientService, metrics *Metrics, resources ...Resource) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	for _, res := range resources {
		metrics.TrackRecordCount(res.Kind(), res.Len)
	}
	if c, ok := patients.(counter); ok {
		metrics.TrackRecordCount(model.PatientKind, c.Len)
	}

	return &Server{
		config:    config,
		resources: resources,
		patients:  patients,
		metrics:   metrics,
		logger:    config.Logger,
		started:   time.Now(),
	}
}

// Routes builds the HTTP handler with every endpoint configured
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/health", s.metrics.InstrumentHandler("GET", "/health", s.handleHealth))
	r.Get("/stats", s.metrics.InstrumentHandler("GET", "/stats", s.handleStats))

	for _, res := range s.resources {
		res.Mount(r, s.metrics, s.config.MaxBodyBytes)
	}

	if s.patients != nil {
		r.Post("/patient-records", s.metrics.InstrumentHandler("POST", "/patient-records", s.handlePatientRecords))
		r.Get("/patient-records", s.metrics.InstrumentHandler("GET", "/patient-records", s.handlePatientWSDL))
	}

	r.Get("/swagger/*", s.handleSwagger)

	return r
}

// handleSwagger serves the Swagger UI and the generated document
func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/doc.json", "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.Error("failed to generate swagger doc", "error", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	<title>dataprov API Documentation</title>
	<link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	<script>
	  window.onload = function() {
	    SwaggerUIBundle({
	      url: '/swagger/doc.json',
	      dom_id: '#swagger-ui',
	      presets: [
	        SwaggerUIBundle.presets.apis,
	        SwaggerUIBundle.presets.standalone
	      ]
	    });
	  };
	</script>
</body>
</html>`

// StartServer serves until ctx is cancelled, then shuts down gracefully
func (s *Server) StartServer(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Bind, strconv.Itoa(s.config.Port))
	SwaggerInfo.Host = addr

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting dataprov server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down dataprov server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
