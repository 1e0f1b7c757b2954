package server

import (
	"context"
	"net/http"

	"photo-indexer/config"
	"photo-indexer/logger"
	"photo-indexer/middleware"
	"photo-indexer/rest"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers collects the REST handlers the server routes to.
type Handlers struct {
	Search  *rest.SearchHandler
	Profile *rest.ProfileHandler
	Import  *rest.ImportHandler
	Health  *rest.HealthHandler
}

type Server struct {
	config *config.Config
	echo   *echo.Echo
}

func New(cfg *config.Config, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = cfg.HTTP.ReadHeaderTimeout

	e.Use(echomw.Recover())
	e.Use(middleware.OTelStatus())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error == nil {
				logger.Logger.Info("request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.Logger.Error("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.GET("/v1/search", h.Search.Handle)
	e.POST("/v1/profiles", h.Profile.HandleRegister)
	e.GET("/v1/profiles", h.Profile.HandleList)
	e.POST("/v1/imports", h.Import.Handle)
	e.GET("/v1/health", h.Health.Handle)

	return &Server{
		config: cfg,
		echo:   e,
	}
}

func (s *Server) Start() error {
	logger.Logger.Info("starting HTTP server", "addr", s.config.HTTP.Addr)
	if err := s.echo.Start(s.config.HTTP.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Logger.Info("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
