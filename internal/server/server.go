// Package server exposes document validation and rendering over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiscaldoc/fiscaldoc/internal/model"
	"github.com/fiscaldoc/fiscaldoc/internal/parser"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/receipts/validate", s.handleValidateReceipt)
		v1.POST("/receipts/render", s.handleRenderReceipt)

		v1.POST("/corrections/validate", s.handleValidateCorrection)
		v1.POST("/corrections/render", s.handleRenderCorrection)

		// Kind auto-detected from the body shape
		v1.POST("/documents/validate", s.handleValidateAuto)
		v1.POST("/documents/render", s.handleRenderAuto)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleValidateReceipt(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	r, err := parser.ParseReceipt(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Kind:   string(parser.KindReceipt),
			Errors: []string{err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid: true,
		Kind:  string(parser.KindReceipt),
		Total: r.Total().StringFixed(2),
	})
}

func (s *Server) handleValidateCorrection(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	if _, err := parser.ParseCorrection(body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:  false,
			Kind:   string(parser.KindCorrection),
			Errors: []string{err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid: true,
		Kind:  string(parser.KindCorrection),
	})
}

func (s *Server) handleValidateAuto(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	doc, kind, err := parser.Parse(body)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if kind == parser.KindUnknown {
			status = http.StatusBadRequest
		}
		c.JSON(status, ValidationResponse{
			Valid:  false,
			Kind:   string(kind),
			Errors: []string{err.Error()},
		})
		return
	}

	resp := ValidationResponse{Valid: true, Kind: string(kind)}
	if r, ok := doc.(*model.Receipt); ok {
		resp.Total = r.Total().StringFixed(2)
	}
	c.JSON(http.StatusOK, resp)
}

// render parses and re-serializes a document, normalizing field order,
// number formats, and stripped whitespace.
func (s *Server) render(c *gin.Context, doc model.Document, err error) {
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid document",
			Details: err.Error(),
		})
		return
	}

	out, err := doc.Serialize()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "document is incomplete",
			Details: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/json", out)
}

func (s *Server) handleRenderReceipt(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	r, err := parser.ParseReceipt(body)
	s.render(c, r, err)
}

func (s *Server) handleRenderCorrection(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	doc, err := parser.ParseCorrection(body)
	s.render(c, doc, err)
}

func (s *Server) handleRenderAuto(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	doc, kind, err := parser.Parse(body)
	if err != nil && kind == parser.KindUnknown {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unrecognized document shape",
			Details: err.Error(),
		})
		return
	}
	s.render(c, doc, err)
}
