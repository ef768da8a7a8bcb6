package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/storeops/fulfillment/internal/app"
)

var server *WebServer

// WebServer wraps the echo instance serving the admin API.
type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
}

// Init builds the global web server from the application context. The
// database handle and order processor are injected into every request
// context so API handlers stay free of global state.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(zapLoggerMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("db", appCtx.DB())
			c.Set("processor", appCtx.Processor())
			return next(c)
		}
	})

	server = &WebServer{appCtx: appCtx, root: e}
	return server
}

// Instance returns the initialized web server.
func Instance() *WebServer {
	return server
}

// Listen starts serving on the configured host and port.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.appCtx.Config().Web.Host, s.appCtx.Config().Web.Port)
	zap.S().Infof("admin api listening on %s", addr)
	return s.root.Start(addr)
}

// Echo exposes the underlying echo instance (used by tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// ApiGET registers an API GET route
func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET("/api"+path, h)
}

// ApiPOST registers an API POST route
func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST("/api"+path, h)
}

// ApiPUT registers an API PUT route
func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT("/api"+path, h)
}

// ApiDELETE registers an API DELETE route
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE("/api"+path, h)
}

func zapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}
