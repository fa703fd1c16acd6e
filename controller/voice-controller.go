package controller

import (
	"time"

	"verdiq/client"
	"verdiq/repository"
	"verdiq/service"
	"verdiq/storage"
	"verdiq/utils"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type VoiceController struct {
	voiceService *service.VoiceService
	userService  *service.UserService
}

func NewVoiceController(db *gorm.DB, store storage.ObjectStore, openai *client.OpenAIClient, intentWriter *kafka.Writer) *VoiceController {
	voiceService := service.NewVoiceService(db, store, openai, nil)
	if intentWriter != nil {
		voiceService = service.NewVoiceService(db, store, openai, intentWriter)
	}
	return &VoiceController{
		voiceService: voiceService,
		userService:  service.NewUserService(db),
	}
}

func setupVoiceController(db *gorm.DB, store storage.ObjectStore, openai *client.OpenAIClient, intentWriter *kafka.Writer) []RouteInfo {
	e := NewVoiceController(db, store, openai, intentWriter)
	return []RouteInfo{
		{Method: "POST", Path: "/voice/process", HandlerFunc: e.processVoiceHandler(), Authenticated: true},
		{Method: "GET", Path: "/voice/recordings", HandlerFunc: e.getRecordingsHandler(), Authenticated: true},
	}
}

type VoiceProcess struct {
	Path string `json:"path"`
}

type VoiceProcessResponse struct {
	Ok          bool    `json:"ok"`
	RecordingId string  `json:"recording_id"`
	Intent      string  `json:"intent"`
	Confidence  float64 `json:"confidence"`
}

type RecordingResponse struct {
	Id        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecordingResponse(recording *repository.Recording) *RecordingResponse {
	return &RecordingResponse{
		Id:        recording.Id,
		Path:      recording.Path,
		CreatedAt: recording.CreatedAt,
	}
}

// @Description Fetches the authenticated user's recordings, newest first
// @Tags voice
// @Produce json
// @Success 200 {array} RecordingResponse
// @Router /voice/recordings [get]
func (e *VoiceController) getRecordingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthCookie(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		recordings, err := e.voiceService.GetRecordings(user.Id)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(recordings, toRecordingResponse))
	}
}

// @Description Transcribes and classifies an uploaded audio object
// @Tags voice
// @Accept json
// @Produce json
// @Param body body VoiceProcess true "Storage path of the uploaded audio"
// @Success 200 {object} VoiceProcessResponse
// @Router /voice/process [post]
func (e *VoiceController) processVoiceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromAuthCookie(c)
		if err != nil {
			c.JSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		var body VoiceProcess
		if err := c.BindJSON(&body); err != nil {
			c.JSON(400, gin.H{"ok": false, "error": err.Error()})
			return
		}
		if body.Path == "" {
			c.JSON(400, gin.H{"ok": false, "error": "Missing storage path."})
			return
		}
		result, err := e.voiceService.ProcessRecording(c.Request.Context(), user.Id, body.Path)
		if err != nil {
			c.JSON(500, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(200, VoiceProcessResponse{
			Ok:          true,
			RecordingId: result.RecordingId,
			Intent:      string(result.Intent),
			Confidence:  result.Confidence,
		})
	}
}
