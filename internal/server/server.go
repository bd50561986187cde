// Package server exposes the placement engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/RoomFit/internal/check"
	"github.com/piwi3910/RoomFit/internal/engine"
	"github.com/piwi3910/RoomFit/internal/model"
	"github.com/piwi3910/RoomFit/internal/room"
)

// LayoutRequest asks for one layout.
type LayoutRequest struct {
	Name  string         `json:"name"`
	Room  model.RoomSpec `json:"room"`
	Order []string       `json:"order"`
	Seed  int64          `json:"seed"`
}

// LayoutResponse carries the stored layout and the engine's report.
type LayoutResponse struct {
	Layout      model.Layout        `json:"layout"`
	Complete    bool                `json:"complete"`
	Diagnostics []engine.Diagnostic `json:"diagnostics"`
	Stats       engine.SearchStats  `json:"stats"`
	Coverage    model.FloorCoverage `json:"coverage"`
}

// CheckRequest asks for an audit of existing placements.
type CheckRequest struct {
	Room       model.RoomSpec           `json:"room"`
	Placements []model.FittingPlacement `json:"placements"`
}

// CheckResponse lists the problems found, empty for a valid layout.
type CheckResponse struct {
	Valid    bool            `json:"valid"`
	Problems []check.Problem `json:"problems"`
	Messages []string        `json:"messages"`
}

// Server serves layout requests against one furnisher.
type Server struct {
	furnisher *engine.Furnisher
	log       logr.Logger
	metrics   *metrics
	router    *gin.Engine
}

// New builds the HTTP routes. The furnisher is shared by all requests.
func New(f *engine.Furnisher, log logr.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		furnisher: f,
		log:       log,
		metrics:   newMetrics(),
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery(), s.logRequests())

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	api.GET("/models", s.handleModels)
	api.POST("/layouts", s.handleLayout)
	api.POST("/check", s.handleCheck)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.V(1).Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, s.furnisher.Catalog().Summaries())
}

func (s *Server) handleLayout(c *gin.Context) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.layoutsTotal.WithLabelValues(outcomeError).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := room.FromSpec(req.Room, s.furnisher.Settings())
	if err != nil {
		s.metrics.layoutsTotal.WithLabelValues(outcomeError).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	res, err := s.furnisher.Generate(r, req.Order, req.Seed)
	if err != nil {
		s.metrics.layoutsTotal.WithLabelValues(outcomeError).Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrUnknownFittingModel) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// Rejected requests never reach the search and are not timed.
	s.metrics.layoutDuration.Observe(time.Since(start).Seconds())
	s.metrics.searchCandidates.Observe(float64(res.Stats.Candidates))
	for _, d := range res.Diagnostics {
		s.metrics.diagnosticsTotal.WithLabelValues(string(d.Kind)).Inc()
	}
	complete := len(req.Order) == 0 || res.Complete()
	if complete {
		s.metrics.layoutsTotal.WithLabelValues(outcomeComplete).Inc()
	} else {
		s.metrics.layoutsTotal.WithLabelValues(outcomeEmpty).Inc()
	}

	layout := model.NewLayout(req.Name, req.Room, req.Order, res.Seed, res.Placements)
	layout.Diagnostics = res.DiagnosticStrings()
	diags := res.Diagnostics
	if diags == nil {
		diags = []engine.Diagnostic{}
	}
	c.JSON(http.StatusOK, LayoutResponse{
		Layout:      layout,
		Complete:    complete,
		Diagnostics: diags,
		Stats:       res.Stats,
		Coverage:    model.CalculateCoverage(layout.Room, layout.Placements, s.furnisher.Catalog()),
	})
}

func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := room.FromSpec(req.Room, s.furnisher.Settings())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problems := check.CheckLayout(s.furnisher.Catalog(), r, req.Placements)
	if problems == nil {
		problems = []check.Problem{}
	}
	c.JSON(http.StatusOK, CheckResponse{
		Valid:    len(problems) == 0,
		Problems: problems,
		Messages: check.FormatProblems(problems),
	})
}
