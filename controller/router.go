package controller

import (
	"errors"

	"verdiq/app_error"
	"verdiq/auth"
	"verdiq/client"
	"verdiq/storage"
	"verdiq/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []string
}

func SetRoutes(r *gin.Engine, db *gorm.DB, store storage.ObjectStore, openai *client.OpenAIClient, intentWriter *kafka.Writer, cacheStore persistence.CacheStore) {
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupRoundController(db)...)
	routes = append(routes, setupHoleController(db)...)
	routes = append(routes, setupDashboardController(db, cacheStore)...)
	routes = append(routes, setupExportController(db)...)
	routes = append(routes, setupVoiceController(db, store, openai, intentWriter)...)
	routes = append(routes, setupRecorderController(db, store, openai, intentWriter)...)
	routes = append(routes, setupVoiceMemoController(db)...)
	routes = append(routes, setupOauthController(db)...)
	routes = append(routes, setupUserController(db)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		r.Handle(route.Method, "/api"+route.Path, handlerfuncs...)
	}
}

func AuthMiddleware(roles []string) gin.HandlerFunc {
	return func(r *gin.Context) {
		authCookie, err := r.Cookie("auth")
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		token, err := auth.ParseToken(authCookie)
		if err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		if !token.Valid {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		claims := &auth.Claims{}
		claims.FromJWTClaims(token.Claims)
		if err := claims.Valid(); err != nil {
			r.JSON(401, gin.H{"error": "Unauthenticated"})
			r.Abort()
			return
		}
		if len(roles) == 0 {
			r.Next()
			return
		}
		for _, requiredRole := range roles {
			if utils.Contains(claims.Permissions, requiredRole) {
				r.Next()
				return
			}
		}
		r.JSON(403, gin.H{"error": "Unauthorized"})
		r.Abort()
	}
}

// handleServiceError maps service failures onto the response: validation
// errors carry their own status, missing rows are 404, everything else is a
// downstream failure surfaced verbatim.
func handleServiceError(c *gin.Context, err error) {
	var statusErr interface{ HTTPStatus() int }
	if errors.As(err, &statusErr) {
		app_error.WithHTTPStatus(c, err, statusErr.HTTPStatus())
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(404, gin.H{"error": "Not found"})
		return
	}
	c.JSON(500, gin.H{"error": err.Error()})
}
