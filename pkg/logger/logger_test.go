package logger

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"phone-book/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, getLogLevel(in), in)
	}
}

func TestInitLogger_WritesJSONFile(t *testing.T) {
	req := require.New(t)
	prev := log
	t.Cleanup(func() { log = prev })

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l := InitLogger(config.LogConfig{Level: "info", Filename: path, MaxSize: 1})
	req.NotNil(l)

	Info("Message status updated to: SENT", zap.Uint("message_id", 3))
	Debug("below level")
	_ = Sync()

	data, err := os.ReadFile(path)
	req.NoError(err)
	req.Contains(string(data), `"msg":"Message status updated to: SENT"`)
	req.Contains(string(data), `"message_id":3`)
	req.NotContains(string(data), "below level")
}

func withObserver(t *testing.T) *observer.ObservedLogs {
	prev := log
	t.Cleanup(func() { log = prev })
	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	return logs
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)
	logs := withObserver(t)

	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Set("username", "alice")
		c.Status(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	req.Len(entries, 2)
	req.Equal(zapcore.InfoLevel, entries[0].Level)
	req.Equal(zapcore.WarnLevel, entries[1].Level)
	req.Equal("/missing", entries[1].ContextMap()["path"])
	req.EqualValues(7, entries[1].ContextMap()["user_id"])
	req.Equal("alice", entries[1].ContextMap()["username"])
}

func TestErrorLoggerMiddleware_RecoversAnyValue(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)
	logs := withObserver(t)

	r := gin.New()
	r.Use(ErrorLoggerMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic(42) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	req.Equal(http.StatusInternalServerError, w.Code)
	panics := logs.FilterMessage("HTTP请求发生panic").All()
	req.Len(panics, 1)
	req.EqualValues(42, panics[0].ContextMap()["error"])
}
