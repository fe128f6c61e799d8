//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parkvue/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogConfig() config.LogConfig {
	return config.LogConfig{Level: "info", TimeZone: "UTC", TimeFormat: "2006-01-02 15:04:05.000"}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("WARN").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}

func TestLoggingMiddleware_ReleaseModeWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(testLogConfig(), &buf, gin.ReleaseMode)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(l.LoggingMiddleware())
	router.GET("/missing", func(c *gin.Context) {
		c.Set(ctxClaimsKey, map[string]any{"user_id": "u-1", "role": "guest"})
		c.Status(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	requestID := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Request completed", entry["msg"])
	assert.Equal(t, requestID, entry["request_id"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.EqualValues(t, http.StatusNotFound, entry["status_code"])
}

func TestNewLogger_DebugModeIsPlainText(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(testLogConfig(), &buf, gin.TestMode)

	l.Slog().Info("hello", "room_id", "r-1")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "room_id=r-1")
	assert.NotContains(t, out, "\x1b[", "test mode must not emit ANSI colors")
}
