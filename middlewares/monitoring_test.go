package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPrometheusMiddleware_CountsRequests(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/things/:id", "204"))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/things/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestTrackOperation(t *testing.T) {
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) {
		defer TrackOperation(c, "widgets", "read")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) {
		defer TrackOperation(c, "widgets", "read")
		c.JSON(http.StatusNotFound, gin.H{"error": "Widget not found"})
	})

	success := operations.WithLabelValues("widgets", "read", "success")
	failure := operations.WithLabelValues("widgets", "read", "client_error")
	okBefore, errBefore := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(failure))
}

func TestOutcome(t *testing.T) {
	for status, want := range map[int]string{
		http.StatusOK:                  "success",
		http.StatusCreated:             "success",
		http.StatusNoContent:           "success",
		http.StatusBadRequest:          "client_error",
		http.StatusUnprocessableEntity: "client_error",
		http.StatusInternalServerError: "server_error",
	} {
		assert.Equal(t, want, outcome(status), status)
	}
}
