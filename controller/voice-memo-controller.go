package controller

import (
	"time"

	"verdiq/repository"
	"verdiq/service"
	"verdiq/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoiceMemoController struct {
	voiceMemoService *service.VoiceMemoService
	userService      *service.UserService
}

func NewVoiceMemoController(db *gorm.DB) *VoiceMemoController {
	return &VoiceMemoController{
		voiceMemoService: service.NewVoiceMemoService(db),
		userService:      service.NewUserService(db),
	}
}

func setupVoiceMemoController(db *gorm.DB) []RouteInfo {
	e := NewVoiceMemoController(db)
	basePath := "/voice/memos"
	routes := []RouteInfo{
		{Method: "POST", Path: "", HandlerFunc: e.createMemoHandler(), Authenticated: true},
		{Method: "GET", Path: "", HandlerFunc: e.getMemosHandler()},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	return routes
}

type VoiceMemoCreate struct {
	RoundId    *string `json:"round_id"`
	HoleId     *string `json:"hole_id"`
	AudioUrl   string  `json:"audio_url" binding:"required"`
	Transcript string  `json:"transcript"`
}

type VoiceMemoResponse struct {
	Id         string    `json:"id"`
	RoundId    *string   `json:"round_id"`
	HoleId     *string   `json:"hole_id"`
	AudioUrl   string    `json:"audio_url"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
}

func toVoiceMemoResponse(memo *repository.VoiceMemo) *VoiceMemoResponse {
	return &VoiceMemoResponse{
		Id:         memo.Id,
		RoundId:    memo.RoundId,
		HoleId:     memo.HoleId,
		AudioUrl:   memo.AudioUrl,
		Transcript: memo.Transcript,
		CreatedAt:  memo.CreatedAt,
	}
}

// @Description Attaches a voice memo to a round or hole
// @Tags voice
// @Accept json
// @Produce json
// @Param memo body VoiceMemoCreate true "Memo to create"
// @Success 201 {object} VoiceMemoResponse
// @Router /voice/memos [post]
func (e *VoiceMemoController) createMemoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthCookie(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		var memoCreate VoiceMemoCreate
		if err := c.BindJSON(&memoCreate); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if memoCreate.RoundId != nil && !uuidPattern.MatchString(*memoCreate.RoundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		memo, err := e.voiceMemoService.CreateMemo(&repository.VoiceMemo{
			UserId:     user.Id,
			RoundId:    memoCreate.RoundId,
			HoleId:     memoCreate.HoleId,
			AudioUrl:   memoCreate.AudioUrl,
			Transcript: memoCreate.Transcript,
		})
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(201, toVoiceMemoResponse(memo))
	}
}

// @Description Fetches the voice memos of a round, newest first
// @Tags voice
// @Produce json
// @Param round_id query string true "Round ID"
// @Success 200 {array} VoiceMemoResponse
// @Router /voice/memos [get]
func (e *VoiceMemoController) getMemosHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		roundId := c.Query("round_id")
		if !uuidPattern.MatchString(roundId) {
			c.JSON(400, gin.H{"error": "Invalid round id"})
			return
		}
		memos, err := e.voiceMemoService.GetMemosForRound(roundId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(memos, toVoiceMemoResponse))
	}
}
