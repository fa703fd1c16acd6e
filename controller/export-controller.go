package controller

import (
	"verdiq/repository"
	"verdiq/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportController struct {
	exportService *service.ExportService
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{
		exportService: service.NewExportService(db),
	}
}

func setupExportController(db *gorm.DB) []RouteInfo {
	e := NewExportController(db)
	basePath := "/export"
	routes := []RouteInfo{
		{Method: "GET", Path: "/rounds", HandlerFunc: e.exportRoundsHandler()},
		{Method: "GET", Path: "/holes", HandlerFunc: e.exportHolesHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

func writeCSV(c *gin.Context, filename string, csv string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.String(200, csv)
}

// lieParam parses an optional lie filter, reporting whether it was valid.
func lieParam(c *gin.Context, name string) (*repository.Lie, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	lie := repository.Lie(value)
	if !lie.Valid() {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	return &lie, true
}

// @Description Exports rounds joined with their holes as CSV
// @Tags export
// @Produce text/csv
// @Param from query string false "Earliest date played (YYYY-MM-DD)"
// @Param to query string false "Latest date played (YYYY-MM-DD)"
// @Param course query string false "Course name substring"
// @Param holes query string false "9, 18 or all, matched against the stored hole rows"
// @Success 200 {string} string
// @Router /export/rounds [get]
func (e *ExportController) exportRoundsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.RoundFilter{
			From:   c.Query("from"),
			To:     c.Query("to"),
			Course: c.Query("course"),
		}
		csv, err := e.exportService.ExportRounds(filter, c.DefaultQuery("holes", "all"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		writeCSV(c, "verdiq-rounds.csv", csv)
	}
}

// @Description Exports individual holes as CSV, optionally filtered by lie
// @Tags export
// @Produce text/csv
// @Param from query string false "Earliest date played (YYYY-MM-DD)"
// @Param to query string false "Latest date played (YYYY-MM-DD)"
// @Param course query string false "Course name substring"
// @Param start_lie query string false "Starting lie filter"
// @Param end_lie query string false "Ending lie filter"
// @Success 200 {string} string
// @Router /export/holes [get]
func (e *ExportController) exportHolesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.RoundFilter{
			From:   c.Query("from"),
			To:     c.Query("to"),
			Course: c.Query("course"),
		}
		startLie, ok := lieParam(c, "start_lie")
		if !ok {
			return
		}
		endLie, ok := lieParam(c, "end_lie")
		if !ok {
			return
		}
		csv, err := e.exportService.ExportHoles(filter, startLie, endLie)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		writeCSV(c, "verdiq-holes.csv", csv)
	}
}
