package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/boards/:board_id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/boards/:board_id", "204"))
	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/boards/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/boards/:board_id", "204"))
	assert.Equal(t, 3.0, after-before)
}

func TestCascadeDeleted(t *testing.T) {
	before := testutil.ToFloat64(cascadeDeletes.WithLabelValues("board"))
	CascadeDeleted("board")
	assert.Equal(t, 1.0, testutil.ToFloat64(cascadeDeletes.WithLabelValues("board"))-before)
}
