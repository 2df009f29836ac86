package loggingmw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/EdYashida/ecommerce-api/internal/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	invoked := false
	handler := RequestLogger(base)(func(c echo.Context) error {
		invoked = true
		// handlers pull the contextual logger from the request context
		require.NotSame(t, slog.Default(), logging.FromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	require.True(t, invoked)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "request completed", entry["msg"])
	require.Equal(t, http.MethodGet, entry["method"])
	require.Equal(t, "/api/products", entry["url"])
	require.EqualValues(t, http.StatusOK, entry["status"])
}
