package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/util"
)

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(c echo.Context, v any) error {
	body := c.Request().Body
	if body == nil {
		return nil
	}
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return c.JSON(status, v)
}

func success(c echo.Context, extra map[string]any) error {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return writeJSON(c, http.StatusOK, body)
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON body")
}

// queryID reads an optional row id. A missing parameter yields 0.
func queryID(c echo.Context, name string) (uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := util.ParseID(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a positive integer: %w", name, service.ErrValidation)
	}
	return id, nil
}

// fail logs err under event and converts it to the HTTP error the client sees.
func fail(l *slog.Logger, event string, err error) error {
	var missing *service.MissingSMTPError
	switch {
	case errors.As(err, &missing):
		l.Warn(event, "status", 400, "reason", "smtp not configured", "missing", missing.Params)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: map[string]any{"error": missing.Error(), "missing_params": missing.Params},
		}
	case errors.Is(err, service.ErrValidation):
		reason := service.Reason(err)
		l.Warn(event, "status", 400, "reason", reason, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, reason)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		reason := service.Reason(err)
		l.Warn(event, "status", 404, "reason", reason, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, reason)
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// ErrorHandler renders every error as {"error": "..."} with the CORS origin
// header so browser clients can read it.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body any = map[string]any{"error": err.Error()}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case map[string]any:
			body = m
		case string:
			body = map[string]any{"error": m}
		case error:
			body = map[string]any{"error": m.Error()}
		default:
			body = map[string]any{"error": fmt.Sprint(m)}
		}
	}

	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
