package controller

import (
	"time"

	"verdiq/repository"
	"verdiq/service"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	dashboardService *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		dashboardService: service.NewDashboardService(db),
	}
}

func setupDashboardController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewDashboardController(db)
	return []RouteInfo{
		{Method: "GET", Path: "/dashboard", HandlerFunc: cache.CachePage(cacheStore, time.Minute, e.getDashboardHandler())},
	}
}

// @Description Fetches the aggregated dashboard. Responses are cached for a
// @Description minute per url.
// @Tags dashboard
// @Produce json
// @Param from query string false "Earliest date played (YYYY-MM-DD)"
// @Param to query string false "Latest date played (YYYY-MM-DD)"
// @Param course query string false "Course name substring"
// @Param holes query string false "9, 18 or all"
// @Success 200 {object} service.Dashboard
// @Router /dashboard [get]
func (e *DashboardController) getDashboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.RoundFilter{
			From:   c.Query("from"),
			To:     c.Query("to"),
			Course: c.Query("course"),
		}
		dashboard, err := e.dashboardService.GetDashboard(filter, c.DefaultQuery("holes", "all"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, dashboard)
	}
}
