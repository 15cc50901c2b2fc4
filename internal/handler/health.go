package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Health reports whether the database is reachable
func Health(service domain.TriviaService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := service.Ping(c.Request().Context()); err != nil {
			return NewAPIError(http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	}
}
