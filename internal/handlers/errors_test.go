package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"benches/internal/apperr"
)

func TestErrorHandlerRendersAppErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { abort(c, apperr.NotFoundf("Bench not found")) })
	r.GET("/plain", func(c *gin.Context) { abort(c, errors.New("boom")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	cases := []struct {
		path   string
		status int
		code   apperr.Code
	}{
		{"/app", http.StatusNotFound, apperr.NotFound},
		{"/plain", http.StatusInternalServerError, apperr.Unknown},
		{"/panic", http.StatusInternalServerError, apperr.Unknown},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", tc.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%s: status %d", tc.path, w.Code)
		}
		if code := errorCode(t, w); code != tc.code {
			t.Fatalf("%s: code %d", tc.path, code)
		}
	}
}
