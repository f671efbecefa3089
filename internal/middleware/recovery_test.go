package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("recovers from panic", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		logger := zap.New(core).Sugar()

		r := gin.New()
		r.Use(Recovery(logger))
		r.GET("/panic", func(c *gin.Context) { panic("something broke") })

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/panic", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

		assert.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "panic recovered", entry.Message)
		assert.NotEmpty(t, entry.ContextMap()["stack"])
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery(zap.NewNop().Sugar()))
		r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ok", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
