package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// statusMessages holds the envelope message for each status the API returns
var statusMessages = map[int]string{
	http.StatusNotFound:              "Not Found",
	http.StatusMethodNotAllowed:      "Method Not Allowed",
	http.StatusRequestEntityTooLarge: "Payload Too Large",
	http.StatusUnprocessableEntity:   "unprocessable",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "No Response",
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// APIError pairs a handler failure with the status it maps to
type APIError struct {
	Code int
	Err  error
}

// NewAPIError creates an APIError for code caused by err
func NewAPIError(code int, err error) *APIError {
	return &APIError{Code: code, Err: err}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %v", e.Code, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ErrorHandler renders every error as an ErrorResponse and logs its cause.
// It is installed as echo's HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var apiErr *APIError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &httpErr):
		code = httpErr.Code
	}

	message, ok := statusMessages[code]
	if !ok {
		message = http.StatusText(code)
	}

	req := c.Request()
	c.Logger().Errorf("%s %s -> %d: %v", req.Method, req.URL.Path, code, err)

	if req.Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{
			Success: false,
			Error:   code,
			Message: message,
		})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
