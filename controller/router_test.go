package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddlewareRejectsMissingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerCalled := false
	r.POST("/api/voice/process", AuthMiddleware(nil), func(c *gin.Context) {
		handlerCalled = true
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/voice/process", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthenticated")
	// the handler never ran, so the pipeline has no side effects
	assert.False(t, handlerCalled)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/users/self", AuthMiddleware(nil), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/users/self", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: "not-a-jwt"})
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestUuidPattern(t *testing.T) {
	assert.True(t, uuidPattern.MatchString("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.True(t, uuidPattern.MatchString("A3BB189E-8BF9-3888-9912-ACE4E6543002"))
	assert.False(t, uuidPattern.MatchString("not-a-uuid"))
	assert.False(t, uuidPattern.MatchString("a3bb189e8bf938889912ace4e6543002"))
	assert.False(t, uuidPattern.MatchString(""))
	// version nibble outside 1-5
	assert.False(t, uuidPattern.MatchString("a3bb189e-8bf9-7888-9912-ace4e6543002"))
}
