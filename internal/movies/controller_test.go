package movies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBindLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(target string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c, w
	}

	c, _ := newCtx("/movies/popular?limit=12")
	limit, ok := bindLimit(c)
	assert.True(t, ok)
	assert.Equal(t, 12, limit)

	// Absent limit defers to the service default.
	c, _ = newCtx("/movies/popular")
	limit, ok = bindLimit(c)
	assert.True(t, ok)
	assert.Equal(t, 0, limit)

	c, w := newCtx("/movies/popular?limit=500")
	_, ok = bindLimit(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
