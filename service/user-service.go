package service

import (
	"fmt"

	"verdiq/auth"
	"verdiq/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository  *repository.UserRepository
	oauthRepository *repository.OauthRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository:  repository.NewUserRepository(db),
		oauthRepository: repository.NewOauthRepository(db),
	}
}

func (s *UserService) GetUserById(userId string, preloads ...string) (*repository.User, error) {
	return s.userRepository.GetUserById(userId, preloads...)
}

func (s *UserService) SaveUser(user *repository.User) (*repository.User, error) {
	return s.userRepository.SaveUser(user)
}

func (s *UserService) GetUserFromAuthCookie(c *gin.Context) (*repository.User, error) {
	authCookie, err := c.Cookie("auth")
	if err != nil {
		return nil, err
	}
	return s.GetUserFromToken(authCookie)
}

func (s *UserService) GetUserFromToken(tokenString string) (*repository.User, error) {
	token, err := auth.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	if claims.UserId == "" {
		return nil, fmt.Errorf("token carries no user id")
	}
	return s.userRepository.GetUserById(claims.UserId)
}

// UpsertOauthUser resolves or creates the local user for an external account
// and stores the latest tokens.
func (s *UserService) UpsertOauthUser(oauth *repository.Oauth) (*repository.User, error) {
	existing, err := s.oauthRepository.GetOauthByProviderAndAccountId(oauth.Provider, oauth.AccountId)
	if err == nil {
		oauth.UserId = existing.UserId
		if _, err := s.oauthRepository.SaveOauth(oauth); err != nil {
			return nil, err
		}
		return s.userRepository.GetUserById(existing.UserId)
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user, err := s.userRepository.SaveUser(&repository.User{
		DisplayName: oauth.Name,
		Email:       oauth.Email,
		Permissions: []string{},
	})
	if err != nil {
		return nil, err
	}
	oauth.UserId = user.Id
	if _, err := s.oauthRepository.SaveOauth(oauth); err != nil {
		return nil, err
	}
	return user, nil
}
