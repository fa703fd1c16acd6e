package controller

import (
	"net/http"
	"os"

	"verdiq/auth"
	"verdiq/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OauthController struct {
	oauthService *service.OauthService
}

func NewOauthController(db *gorm.DB) *OauthController {
	return &OauthController{
		oauthService: service.NewOauthService(db),
	}
}

func setupOauthController(db *gorm.DB) []RouteInfo {
	e := NewOauthController(db)
	basePath := "/oauth2"
	routes := []RouteInfo{
		{Method: "GET", Path: "/google", HandlerFunc: e.googleOauthHandler()},
		{Method: "GET", Path: "/google/redirect", HandlerFunc: e.googleRedirectHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

// @Description Redirects to google oauth
// @Tags oauth
// @Produce json
// @Param last_url query string false "Url to return to after login"
// @Success 302
// @Router /oauth2/google [get]
func (e *OauthController) googleOauthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		url := e.oauthService.GetRedirectUrl(c.Query("last_url"))
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}

// @Description Redirect handler for google oauth
// @Tags oauth
// @Produce json
// @Success 302
// @Router /oauth2/google/redirect [get]
func (e *OauthController) googleRedirectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		errorString := c.Request.URL.Query().Get("error")
		if errorString != "" {
			c.JSON(400, gin.H{"error": errorString})
			return
		}
		code := c.Request.URL.Query().Get("code")
		state := c.Request.URL.Query().Get("state")
		user, lastUrl, err := e.oauthService.VerifyGoogle(state, code)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		authToken, _ := auth.CreateToken(user)
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("auth", authToken, 60*60*24*7, "/", os.Getenv("PUBLIC_DOMAIN"), false, true)
		if lastUrl == "" {
			lastUrl = "/"
		}
		c.Redirect(http.StatusTemporaryRedirect, lastUrl)
	}
}
