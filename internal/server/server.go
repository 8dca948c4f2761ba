// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/archcritic/internal/examples"
	"github.com/dshills/archcritic/internal/pipeline"
	"github.com/dshills/archcritic/internal/render"
	"github.com/dshills/archcritic/internal/review"
	"github.com/dshills/archcritic/internal/schema"
)

// DefaultMaxBytes caps the request body of an analysis.
const DefaultMaxBytes = 64 << 10

// Options configures a Server.
type Options struct {
	Addr     string
	MaxBytes int64
	Version  string
	Logger   *slog.Logger
}

// Server serves analyses over HTTP.
type Server struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics
	engine  *gin.Engine
}

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Text   string `json:"text"`
	Redact bool   `json:"redact"`
	MinRPN int    `json:"min_rpn" binding:"gte=0,lte=1000"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ExampleSummary lists one entry of the example library.
type ExampleSummary struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		metrics: newMetrics(),
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	v1 := s.engine.Group("/v1")
	v1.POST("/analyze", s.handleAnalyze)
	v1.GET("/examples", s.handleExamples)
	v1.GET("/examples/:slug/analysis", s.handleExampleAnalysis)
	return s
}

// Handler returns the HTTP handler for the server's routes.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.opts.Version})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "handler", "handleAnalyze")

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.reject(c, logger, http.StatusRequestEntityTooLarge, "TOO_LARGE", "Request body too large")
			return
		}
		s.reject(c, logger, http.StatusBadRequest, "UNREADABLE", "Request body could not be read")
		return
	}
	if !utf8.Valid(body) {
		s.reject(c, logger, http.StatusBadRequest, "INVALID_ENCODING", "Request body is not valid UTF-8")
		return
	}

	var req AnalyzeRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		s.reject(c, logger, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	s.analyze(c, logger, req)
}

func (s *Server) handleExamples(c *gin.Context) {
	all := examples.All()
	out := make([]ExampleSummary, len(all))
	for i, ex := range all {
		out[i] = ExampleSummary{Slug: ex.Slug, Name: ex.Name, Text: ex.Text}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleExampleAnalysis(c *gin.Context) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "handler", "handleExampleAnalysis")

	ex, err := examples.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
		return
	}
	s.analyze(c, logger, AnalyzeRequest{Text: ex.Text})
}

// analyze runs the pipeline and writes the bundle. ?format= selects any
// renderer other than JSON; an absent or empty value means JSON.
func (s *Server) analyze(c *gin.Context, logger *slog.Logger, req AnalyzeRequest) {
	b, err := pipeline.Analyze(c.Request.Context(), req.Text, pipeline.Options{
		Version: s.opts.Version,
		Redact:  req.Redact,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("analysis aborted", "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Analysis aborted", Code: "CANCELLED"})
		return
	}
	s.metrics.observe(b)
	logger.Info("analysis complete",
		"run_id", b.RunID, "hosting", b.Analysis.Hosting, "top_rpn", b.Summary.TopRPN)

	b.FMEA = review.FilterByRPN(b.FMEA, req.MinRPN)
	b.MinRPN = req.MinRPN

	format := c.Query("format")
	if format == "" || format == "json" {
		c.JSON(http.StatusOK, b)
		return
	}
	s.writeRendered(c, format, b)
}

func (s *Server) writeRendered(c *gin.Context, format string, b *schema.Bundle) {
	r, err := render.NewRendererFor(format, c.Writer)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_FORMAT"})
		return
	}
	out, err := r.Render(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Rendering failed", Code: "RENDER_FAILED"})
		return
	}
	c.Data(http.StatusOK, contentType(format), out)
}

func (s *Server) reject(c *gin.Context, logger *slog.Logger, status int, code, msg string) {
	logger.Warn("request rejected", "code", code)
	s.metrics.reject(code)
	c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

func contentType(format string) string {
	switch format {
	case "md":
		return "text/markdown; charset=utf-8"
	case "yaml":
		return "application/yaml"
	case "dot":
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
