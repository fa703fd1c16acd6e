package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"verdiq/config"
	"verdiq/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type OauthState struct {
	Verifier string
	Timeout  int64
	Redirect string
}

type OauthService struct {
	Config      *oauth2.Config
	userService *UserService

	// mu guards stateMap, which gin handlers hit concurrently
	mu       sync.Mutex
	stateMap map[string]OauthState
}

type GoogleUserResponse struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func NewOauthService(db *gorm.DB) *OauthService {
	cfg := config.Env()
	return &OauthService{
		Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		stateMap:    make(map[string]OauthState),
		userService: NewUserService(db),
	}
}

func (e *OauthService) GetRedirectUrl(lastUrl string) string {
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()

	e.mu.Lock()
	// clean up old verifiers
	for key, v := range e.stateMap {
		if v.Timeout < time.Now().Unix() {
			delete(e.stateMap, key)
		}
	}
	e.stateMap[state] = OauthState{
		Verifier: verifier,
		Timeout:  time.Now().Add(1 * time.Minute).Unix(),
		Redirect: lastUrl,
	}
	e.mu.Unlock()

	return e.Config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// VerifyGoogle exchanges the callback code, fetches the Google profile and
// resolves the local user.
func (e *OauthService) VerifyGoogle(state string, code string) (*repository.User, string, error) {
	e.mu.Lock()
	oauthState, ok := e.stateMap[state]
	delete(e.stateMap, state)
	e.mu.Unlock()
	if !ok || oauthState.Timeout < time.Now().Unix() {
		return nil, "", fmt.Errorf("invalid or expired oauth state")
	}

	token, err := e.Config.Exchange(context.Background(), code, oauth2.VerifierOption(oauthState.Verifier))
	if err != nil {
		return nil, "", err
	}

	googleUser, err := e.fetchGoogleUser(token)
	if err != nil {
		return nil, "", err
	}

	user, err := e.userService.UpsertOauthUser(&repository.Oauth{
		Provider:     repository.ProviderGoogle,
		AccountId:    googleUser.Id,
		Name:         googleUser.Name,
		Email:        googleUser.Email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})
	if err != nil {
		return nil, "", err
	}
	return user, oauthState.Redirect, nil
}

func (e *OauthService) fetchGoogleUser(token *oauth2.Token) (*GoogleUserResponse, error) {
	client := e.Config.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed (%d)", resp.StatusCode)
	}
	var googleUser GoogleUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, err
	}
	return &googleUser, nil
}
