package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func newOauthServiceForTest() *OauthService {
	return &OauthService{
		Config: &oauth2.Config{
			ClientID:    "client-id",
			RedirectURL: "http://localhost:8000/api/oauth2/google/redirect",
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint:    google.Endpoint,
		},
		stateMap: make(map[string]OauthState),
	}
}

func TestGetRedirectUrlConcurrentRequests(t *testing.T) {
	service := newOauthServiceForTest()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				url := service.GetRedirectUrl("/rounds")
				assert.True(t, strings.Contains(url, "state="))
			}
		}()
	}
	wg.Wait()

	service.mu.Lock()
	defer service.mu.Unlock()
	assert.Len(t, service.stateMap, 400)
}

func TestVerifyGoogleRejectsUnknownState(t *testing.T) {
	service := newOauthServiceForTest()

	_, _, err := service.VerifyGoogle("never-issued", "code")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid or expired oauth state")
}

func TestVerifyGoogleRejectsExpiredState(t *testing.T) {
	service := newOauthServiceForTest()
	service.stateMap["stale"] = OauthState{
		Verifier: "verifier",
		Timeout:  time.Now().Add(-time.Minute).Unix(),
		Redirect: "/",
	}

	_, _, err := service.VerifyGoogle("stale", "code")
	assert.NotNil(t, err)

	// the stale entry is consumed either way
	service.mu.Lock()
	defer service.mu.Unlock()
	assert.NotContains(t, service.stateMap, "stale")
}
