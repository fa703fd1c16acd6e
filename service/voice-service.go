package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"verdiq/config"
	"verdiq/metrics"
	"verdiq/parser"
	"verdiq/repository"
	"verdiq/storage"

	"github.com/segmentio/kafka-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const intentSystemPrompt = `
You are Verdiq's golf voice parser.

Return STRICT JSON:
{
  "intent": "log_shot" | "set_pin" | "set_wind" | "ask_advice" | "note",
  "confidence": number,
  "payload": {}
}

If unsure, use intent="note".
`

type speechModel interface {
	Transcribe(ctx context.Context, filename string, contentType string, audio []byte, model string) (string, error)
	ChatCompletionJSON(ctx context.Context, model string, systemPrompt string, userPrompt string) (string, error)
}

type recordingStore interface {
	Create(recording *repository.Recording) (*repository.Recording, error)
	GetRecordingsForUser(userId string) ([]*repository.Recording, error)
}

type transcriptStore interface {
	Create(transcript *repository.Transcript) (*repository.Transcript, error)
}

type voiceIntentStore interface {
	Create(intent *repository.VoiceIntent) (*repository.VoiceIntent, error)
}

type intentEventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type VoiceService struct {
	store                 storage.ObjectStore
	openai                speechModel
	recordingRepository   recordingStore
	transcriptRepository  transcriptStore
	voiceIntentRepository voiceIntentStore
	// nil unless a Kafka broker is configured
	intentWriter intentEventWriter
}

func NewVoiceService(db *gorm.DB, store storage.ObjectStore, openai speechModel, intentWriter intentEventWriter) *VoiceService {
	return &VoiceService{
		store:                 store,
		openai:                openai,
		recordingRepository:   repository.NewRecordingRepository(db),
		transcriptRepository:  repository.NewTranscriptRepository(db),
		voiceIntentRepository: repository.NewVoiceIntentRepository(db),
		intentWriter:          intentWriter,
	}
}

type ProcessResult struct {
	RecordingId string
	Intent      repository.IntentKind
	Confidence  float64
}

// ProcessRecording runs the pipeline for an already-uploaded audio object:
// mint a signed URL, fetch the persisted bytes back through it, transcribe,
// then persist recording, transcript and classified intent in that order.
// Every step is single-attempt; a failure aborts the rest and earlier rows
// are left in place.
func (s *VoiceService) ProcessRecording(ctx context.Context, userId string, path string) (*ProcessResult, error) {
	signedURL, err := s.store.SignedURL(ctx, path, storage.SignedURLTTL)
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("sign").Inc()
		return nil, fmt.Errorf("could not create signed URL for audio: %w", err)
	}

	audio, err := s.store.Fetch(ctx, signedURL)
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("fetch").Inc()
		return nil, err
	}

	transcriptionModel := config.Env().OpenAITranscriptionModel
	start := time.Now()
	text, err := s.openai.Transcribe(ctx, "verdiq-audio.webm", "audio/webm", audio, transcriptionModel)
	metrics.TranscriptionSecondsHistogram.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("transcribe").Inc()
		return nil, err
	}
	if text == "" {
		metrics.RecordingsFailedCounter.WithLabelValues("transcribe").Inc()
		return nil, fmt.Errorf("transcription returned empty text")
	}

	recording, err := s.recordingRepository.Create(&repository.Recording{
		UserId: userId,
		Path:   path,
	})
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("insert_recording").Inc()
		return nil, fmt.Errorf("failed to create recording row: %w", err)
	}

	_, err = s.transcriptRepository.Create(&repository.Transcript{
		RecordingId: recording.Id,
		Text:        text,
		Model:       transcriptionModel,
	})
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("insert_transcript").Inc()
		return nil, fmt.Errorf("failed to insert transcript: %w", err)
	}

	userPrompt := fmt.Sprintf(`Transcript: """%s"""`, text)
	rawIntent, err := s.openai.ChatCompletionJSON(ctx, config.Env().OpenAIIntentModel, intentSystemPrompt, userPrompt)
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("classify").Inc()
		return nil, err
	}
	parsed := parser.ParseIntentResponse(rawIntent)

	_, err = s.voiceIntentRepository.Create(&repository.VoiceIntent{
		RecordingId: recording.Id,
		Intent:      parsed.Intent,
		Confidence:  parsed.Confidence,
		Payload:     datatypes.JSON(parsed.Payload),
	})
	if err != nil {
		metrics.RecordingsFailedCounter.WithLabelValues("insert_intent").Inc()
		return nil, fmt.Errorf("failed to insert intent: %w", err)
	}

	s.publishIntentEvent(ctx, recording.Id, userId, parsed)
	metrics.RecordingsProcessedCounter.Inc()

	return &ProcessResult{
		RecordingId: recording.Id,
		Intent:      parsed.Intent,
		Confidence:  parsed.Confidence,
	}, nil
}

func (s *VoiceService) GetRecordings(userId string) ([]*repository.Recording, error) {
	return s.recordingRepository.GetRecordingsForUser(userId)
}

// publishIntentEvent feeds downstream consumers. Best effort: a broker
// failure never fails the request.
func (s *VoiceService) publishIntentEvent(ctx context.Context, recordingId string, userId string, parsed parser.ParsedIntent) {
	if s.intentWriter == nil {
		return
	}
	event, err := json.Marshal(map[string]interface{}{
		"recording_id": recordingId,
		"user_id":      userId,
		"intent":       parsed.Intent,
		"confidence":   parsed.Confidence,
	})
	if err != nil {
		return
	}
	_ = s.intentWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(recordingId),
		Value: event,
	})
}
