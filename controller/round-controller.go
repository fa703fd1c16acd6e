package controller

import (
	"regexp"

	"verdiq/repository"
	"verdiq/scoring"
	"verdiq/service"
	"verdiq/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

type RoundController struct {
	roundService *service.RoundService
}

func NewRoundController(db *gorm.DB) *RoundController {
	return &RoundController{
		roundService: service.NewRoundService(db),
	}
}

func setupRoundController(db *gorm.DB) []RouteInfo {
	e := NewRoundController(db)
	basePath := "/rounds"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getRoundsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createRoundHandler()},
		{Method: "GET", Path: "/:round_id", HandlerFunc: e.getRoundHandler()},
		{Method: "PATCH", Path: "/:round_id", HandlerFunc: e.updateRoundHandler()},
		{Method: "DELETE", Path: "/:round_id", HandlerFunc: e.deleteRoundHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type RoundCreate struct {
	CourseName         string   `json:"course_name" binding:"required"`
	DatePlayed         string   `json:"date_played" binding:"required"`
	Score              *int     `json:"score" binding:"required"`
	HoleCount          *int     `json:"hole_count"`
	SgOfftee           *float64 `json:"sg_offtee"`
	SgApproach         *float64 `json:"sg_approach"`
	SgShort            *float64 `json:"sg_short"`
	SgPutting          *float64 `json:"sg_putting"`
	StrokesGainedTotal *float64 `json:"strokes_gained_total"`
}

func (r *RoundCreate) toModel() *repository.Round {
	return &repository.Round{
		CourseName:         &r.CourseName,
		DatePlayed:         r.DatePlayed,
		Score:              r.Score,
		HoleCount:          r.HoleCount,
		SgOfftee:           r.SgOfftee,
		SgApproach:         r.SgApproach,
		SgShort:            r.SgShort,
		SgPutting:          r.SgPutting,
		StrokesGainedTotal: r.StrokesGainedTotal,
	}
}

type RoundResponse struct {
	Id                 string   `json:"id"`
	DatePlayed         string   `json:"date_played"`
	CourseName         *string  `json:"course_name"`
	HoleCount          *int     `json:"hole_count"`
	Score              *int     `json:"score"`
	SgOfftee           *float64 `json:"sg_offtee"`
	SgApproach         *float64 `json:"sg_approach"`
	SgShort            *float64 `json:"sg_short"`
	SgPutting          *float64 `json:"sg_putting"`
	StrokesGainedTotal *float64 `json:"strokes_gained_total"`
	SgComponentSum     float64  `json:"sg_component_sum"`
	SgDelta            float64  `json:"sg_delta"`
}

func toRoundResponse(round *repository.Round) *RoundResponse {
	sum := scoring.ComponentSum(round.SgOfftee, round.SgApproach, round.SgShort, round.SgPutting)
	return &RoundResponse{
		Id:                 round.Id,
		DatePlayed:         round.DatePlayed,
		CourseName:         round.CourseName,
		HoleCount:          round.HoleCount,
		Score:              round.Score,
		SgOfftee:           round.SgOfftee,
		SgApproach:         round.SgApproach,
		SgShort:            round.SgShort,
		SgPutting:          round.SgPutting,
		StrokesGainedTotal: round.StrokesGainedTotal,
		SgComponentSum:     sum,
		SgDelta:            scoring.Delta(sum, round.StrokesGainedTotal),
	}
}

// @Description Fetches rounds, optionally filtered by date range, course and hole count
// @Tags round
// @Produce json
// @Param from query string false "Earliest date played (YYYY-MM-DD)"
// @Param to query string false "Latest date played (YYYY-MM-DD)"
// @Param course query string false "Course name substring"
// @Param holes query string false "9, 18 or all"
// @Success 200 {array} RoundResponse
// @Router /rounds [get]
func (e *RoundController) getRoundsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.RoundFilter{
			From:   c.Query("from"),
			To:     c.Query("to"),
			Course: c.Query("course"),
		}
		rounds, err := e.roundService.GetRounds(filter, c.DefaultQuery("holes", "all"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(rounds, toRoundResponse))
	}
}

// @Description Creates a round
// @Tags round
// @Accept json
// @Produce json
// @Param round body RoundCreate true "Round to create"
// @Success 201 {object} map[string]string
// @Router /rounds [post]
func (e *RoundController) createRoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var roundCreate RoundCreate
		if err := c.BindJSON(&roundCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		round, err := e.roundService.CreateRound(roundCreate.toModel())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, gin.H{"id": round.Id})
	}
}

// @Description Gets a round by id
// @Tags round
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} RoundResponse
// @Router /rounds/{round_id} [get]
func (e *RoundController) getRoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Param("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		round, err := e.roundService.GetRoundById(roundId)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, toRoundResponse(round))
	}
}

// @Description Partially updates a round. Unknown fields are ignored and the
// @Description strokes-gained total is recomputed from its components when absent.
// @Tags round
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Param round body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]bool
// @Router /rounds/{round_id} [patch]
func (e *RoundController) updateRoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Param("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		var body map[string]interface{}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.roundService.PatchRound(roundId, body); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"ok": true})
	}
}

// @Description Deletes a round and its holes
// @Tags round
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {object} map[string]bool
// @Router /rounds/{round_id} [delete]
func (e *RoundController) deleteRoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Param("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		if err := e.roundService.DeleteRound(roundId); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"ok": true})
	}
}
