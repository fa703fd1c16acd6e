package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The uuid gate runs before any repository access, so a nil db is safe here.
func roundTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	e := NewRoundController(nil)
	r.PATCH("/api/rounds/:round_id", e.updateRoundHandler())
	r.DELETE("/api/rounds/:round_id", e.deleteRoundHandler())
	return r
}

func TestDeleteRoundRejectsInvalidUuid(t *testing.T) {
	r := roundTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/rounds/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid round id")
}

func TestPatchRoundRejectsInvalidUuid(t *testing.T) {
	r := roundTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/rounds/123", strings.NewReader(`{"score":80}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestPatchRoundRejectsBadHoleCount(t *testing.T) {
	r := roundTestRouter()

	for _, body := range []string{`{"hole_count":12}`, `{"hole_count":0}`, `{"hole_count":-9}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PATCH", "/api/rounds/a3bb189e-8bf9-3888-9912-ace4e6543002", strings.NewReader(body))
		r.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code, body)
		assert.Contains(t, w.Body.String(), "hole_count")
	}
}

func TestPatchRoundRejectsMalformedBody(t *testing.T) {
	r := roundTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/rounds/a3bb189e-8bf9-3888-9912-ace4e6543002", strings.NewReader(`not json`))
	r.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
