package controller

import (
	"encoding/json"
	"net/http"

	"verdiq/client"
	"verdiq/service"
	"verdiq/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type RecorderController struct {
	recorderService *service.RecorderService
	userService     *service.UserService
}

func NewRecorderController(db *gorm.DB, store storage.ObjectStore, openai *client.OpenAIClient, intentWriter *kafka.Writer) *RecorderController {
	voiceService := service.NewVoiceService(db, store, openai, nil)
	if intentWriter != nil {
		voiceService = service.NewVoiceService(db, store, openai, intentWriter)
	}
	return &RecorderController{
		recorderService: service.NewRecorderService(store, voiceService),
		userService:     service.NewUserService(db),
	}
}

func setupRecorderController(db *gorm.DB, store storage.ObjectStore, openai *client.OpenAIClient, intentWriter *kafka.Writer) []RouteInfo {
	e := NewRecorderController(db, store, openai, intentWriter)
	return []RouteInfo{
		{Method: "GET", Path: "/voice/recorder/ws", HandlerFunc: e.WebSocketHandler},
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow any host origin to connect to the websocket
		return true
	},
}

type recorderCommand struct {
	Action string `json:"action"`
	Name   string `json:"name"`
}

type recorderStatusMessage struct {
	Status      string  `json:"status"`
	Error       string  `json:"error,omitempty"`
	RecordingId string  `json:"recording_id,omitempty"`
	Intent      string  `json:"intent,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

func writeStatus(conn *websocket.Conn, msg recorderStatusMessage) error {
	serialized, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, serialized)
}

// @id RecorderWebSocket
// @Description Websocket for live voice capture. Text frames carry control
// @Description commands (start, pause, resume, stop), binary frames carry audio
// @Description chunks. Every command is answered with the session status; stop
// @Description uploads the audio and runs the processing pipeline.
// @Tags voice
// @Router /voice/recorder/ws [get]
// @Success 200 {object} recorderStatusMessage
func (e *RecorderController) WebSocketHandler(c *gin.Context) {
	user, err := e.userService.GetUserFromAuthCookie(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthenticated"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.NotFound(c.Writer, c.Request)
		return
	}
	defer conn.Close()

	session := e.recorderService.OpenSession(user.Id)
	defer e.recorderService.CloseSession(session)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		switch messageType {
		case websocket.BinaryMessage:
			if err := session.Append(data); err != nil {
				_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: err.Error()})
			}
		case websocket.TextMessage:
			var command recorderCommand
			if err := json.Unmarshal(data, &command); err != nil {
				_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: "invalid command"})
				continue
			}
			if e.handleCommand(c, conn, session, command) {
				return
			}
		}
	}
}

// handleCommand runs one control command and reports the resulting status.
// Returns true when the session is finished and the connection should close.
func (e *RecorderController) handleCommand(c *gin.Context, conn *websocket.Conn, session *service.CaptureSession, command recorderCommand) bool {
	switch command.Action {
	case "start":
		if err := session.Start(); err != nil {
			_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: err.Error()})
			return false
		}
	case "pause":
		if err := session.Pause(); err != nil {
			_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: err.Error()})
			return false
		}
	case "resume":
		if err := session.Resume(); err != nil {
			_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: err.Error()})
			return false
		}
	case "stop":
		audio, err := session.Stop()
		if err != nil {
			_ = writeStatus(conn, recorderStatusMessage{Status: string(service.RecorderFailed), Error: err.Error()})
			return true
		}
		_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status())})
		result, err := e.recorderService.Finish(c.Request.Context(), session, command.Name, audio)
		if err != nil {
			_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: err.Error()})
			return true
		}
		_ = writeStatus(conn, recorderStatusMessage{
			Status:      string(session.Status()),
			RecordingId: result.RecordingId,
			Intent:      string(result.Intent),
			Confidence:  result.Confidence,
		})
		return true
	default:
		_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status()), Error: "unknown action " + command.Action})
		return false
	}
	_ = writeStatus(conn, recorderStatusMessage{Status: string(session.Status())})
	return false
}
