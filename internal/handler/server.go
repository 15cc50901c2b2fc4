package handler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/zizouhuweidi/trivia/internal/domain"
	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

var (
	corsAllowHeaders = []string{echo.HeaderContentType, echo.HeaderAuthorization}
	corsAllowMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}
)

// ServerOptions configures NewServer
type ServerOptions struct {
	Service domain.TriviaService

	// Hub serves /ws when set
	Hub *ws.Hub

	// WriteLimiter guards routes that modify questions when set
	WriteLimiter echo.MiddlewareFunc

	// AccessLog enables the request logger
	AccessLog bool
}

// NewServer builds the echo instance with middleware, error handling and routes
func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	// Middleware
	if opts.AccessLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(corsHeaders)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: corsAllowHeaders,
		AllowMethods: corsAllowMethods,
	}))
	e.Use(middleware.BodyLimit("1M"))

	// Routes
	var write []echo.MiddlewareFunc
	if opts.WriteLimiter != nil {
		write = append(write, opts.WriteLimiter)
	}
	NewQuestionHandler(opts.Service).Register(e, write...)
	NewQuizHandler(opts.Service).Register(e)

	if opts.Hub != nil {
		e.GET("/ws", NewWebSocketHandler(opts.Hub).HandleWebSocket)
	}

	// Health check endpoint
	e.GET("/health", Health(opts.Service))

	return e
}

// corsHeaders sets the allowed headers and methods on every response,
// including errors and preflights answered by the CORS middleware
func corsHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	allowHeaders := strings.Join(corsAllowHeaders, ", ")
	allowMethods := strings.Join(corsAllowMethods, ", ")
	return func(c echo.Context) error {
		res := c.Response()
		res.Before(func() {
			res.Header().Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			res.Header().Set(echo.HeaderAccessControlAllowMethods, allowMethods)
		})
		return next(c)
	}
}
