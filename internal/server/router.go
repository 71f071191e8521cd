// Package server is the HTTP host for visualizer sessions. It exposes
// session editing and runs as a JSON API, streams run progress over a
// websocket, and stores layouts through a layout.Store.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/gridpath/internal/log"
)

// Controller registers a group of routes.
type Controller interface {
	Register(*gin.RouterGroup)
}

// Router manages the HTTP server and its controllers.
type Router struct {
	addr        string
	baseURL     string
	mode        string
	controllers []Controller
	log         *log.Logger
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes, e.g. "/api"
	GinMode     string // gin.ReleaseMode, gin.DebugMode or gin.TestMode
	Controllers []Controller
	Logger      *log.Logger
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	logger := config.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		mode:        config.GinMode,
		controllers: config.Controllers,
		log:         logger.With("http"),
	}
}

// Handler builds the gin engine with every controller mounted under
// <baseURL>/v1 and a /healthz check at the root.
func (r *Router) Handler() *gin.Engine {
	if r.mode != "" {
		gin.SetMode(r.mode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), r.requestLogger())
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}
	return router
}

// requestLogger logs one line per request, and the errors handlers
// attached to the context.
func (r *Router) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		began := time.Now()
		ctx.Next()
		status := ctx.Writer.Status()
		path := ctx.Request.URL.Path
		if len(ctx.Errors) > 0 {
			r.log.Errorf("%s %s -> %d: %s", ctx.Request.Method, path, status, ctx.Errors.String())
			return
		}
		r.log.Debugf("%s %s -> %d (%s)", ctx.Request.Method, path, status, time.Since(began))
	}
}

// Run serves until ctx ends, then shuts down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              r.addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		r.log.Infof("listening on %s", r.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.log.Infof("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
