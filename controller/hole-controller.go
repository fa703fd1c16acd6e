package controller

import (
	"fmt"

	"verdiq/repository"
	"verdiq/service"
	"verdiq/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HoleController struct {
	holeService *service.HoleService
}

func NewHoleController(db *gorm.DB) *HoleController {
	return &HoleController{
		holeService: service.NewHoleService(db),
	}
}

func setupHoleController(db *gorm.DB) []RouteInfo {
	e := NewHoleController(db)
	basePath := "/rounds/:round_id/holes"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getHolesHandler()},
		{Method: "PUT", Path: "", HandlerFunc: e.saveHolesHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type HoleSave struct {
	Number         int             `json:"number" binding:"required"`
	Par            *int            `json:"par"`
	Strokes        *int            `json:"strokes"`
	Putts          *int            `json:"putts"`
	StartLie       *repository.Lie `json:"start_lie"`
	StartDistanceY *float64        `json:"start_y"`
	EndLie         *repository.Lie `json:"end_lie"`
	EndDistanceY   *float64        `json:"end_y"`
	SgTrue         *float64        `json:"sg_true"`
	Notes          *string         `json:"notes"`
	AudioUrl       *string         `json:"audio_url"`
	Transcript     *string         `json:"transcript"`
}

func (h *HoleSave) validate() error {
	if h.StartLie != nil && !h.StartLie.Valid() {
		return fmt.Errorf("invalid start_lie %q on hole %d", *h.StartLie, h.Number)
	}
	if h.EndLie != nil && !h.EndLie.Valid() {
		return fmt.Errorf("invalid end_lie %q on hole %d", *h.EndLie, h.Number)
	}
	return nil
}

func (h *HoleSave) toModel() *repository.Hole {
	return &repository.Hole{
		Number:         h.Number,
		Par:            h.Par,
		Strokes:        h.Strokes,
		Putts:          h.Putts,
		StartLie:       h.StartLie,
		StartDistanceY: h.StartDistanceY,
		EndLie:         h.EndLie,
		EndDistanceY:   h.EndDistanceY,
		SgTrue:         h.SgTrue,
		Notes:          h.Notes,
		AudioUrl:       h.AudioUrl,
		Transcript:     h.Transcript,
	}
}

type HoleResponse struct {
	Number         int             `json:"number"`
	Par            *int            `json:"par"`
	Strokes        *int            `json:"strokes"`
	Putts          *int            `json:"putts"`
	StartLie       *repository.Lie `json:"start_lie"`
	StartDistanceY *float64        `json:"start_y"`
	EndLie         *repository.Lie `json:"end_lie"`
	EndDistanceY   *float64        `json:"end_y"`
	SgTrue         *float64        `json:"sg_true"`
	Notes          *string         `json:"notes"`
	AudioUrl       *string         `json:"audio_url"`
	Transcript     *string         `json:"transcript"`
}

func toHoleResponse(hole *repository.Hole) *HoleResponse {
	return &HoleResponse{
		Number:         hole.Number,
		Par:            hole.Par,
		Strokes:        hole.Strokes,
		Putts:          hole.Putts,
		StartLie:       hole.StartLie,
		StartDistanceY: hole.StartDistanceY,
		EndLie:         hole.EndLie,
		EndDistanceY:   hole.EndDistanceY,
		SgTrue:         hole.SgTrue,
		Notes:          hole.Notes,
		AudioUrl:       hole.AudioUrl,
		Transcript:     hole.Transcript,
	}
}

// @Description Fetches the holes of a round ordered by hole number
// @Tags hole
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {array} HoleResponse
// @Router /rounds/{round_id}/holes [get]
func (e *HoleController) getHolesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Param("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		holes, err := e.holeService.GetHolesForRound(roundId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(holes, toHoleResponse))
	}
}

// @Description Saves a batch of holes for a round. Existing holes with the
// @Description same number are overwritten and the round score is recomputed
// @Description from the submitted strokes.
// @Tags hole
// @Accept json
// @Produce json
// @Param round_id path string true "Round ID"
// @Param holes body []HoleSave true "Holes to save"
// @Success 200 {object} map[string]interface{}
// @Router /rounds/{round_id}/holes [put]
func (e *HoleController) saveHolesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Param("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		var holeSaves []*HoleSave
		if err := c.BindJSON(&holeSaves); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		for _, holeSave := range holeSaves {
			if err := holeSave.validate(); err != nil {
				c.JSON(400, gin.H{"error": err.Error()})
				return
			}
		}
		score, err := e.holeService.SaveHoles(roundId, utils.Map(holeSaves, (*HoleSave).toModel))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"ok": true, "score": score})
	}
}
