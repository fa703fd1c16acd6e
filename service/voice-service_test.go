package service

import (
	"context"
	"io"
	"testing"
	"time"

	"verdiq/repository"

	"github.com/stretchr/testify/assert"
)

type fakeObjectStore struct {
	calls    *[]string
	audio    []byte
	uploaded map[string][]byte
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, contentType string, reader io.Reader) error {
	*f.calls = append(*f.calls, "upload")
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if f.uploaded == nil {
		f.uploaded = make(map[string][]byte)
	}
	f.uploaded[key] = data
	return nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeObjectStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	*f.calls = append(*f.calls, "sign")
	return "https://signed.example/" + key, nil
}

func (f *fakeObjectStore) Fetch(ctx context.Context, signedURL string) ([]byte, error) {
	*f.calls = append(*f.calls, "fetch")
	return f.audio, nil
}

type fakeSpeechModel struct {
	calls      *[]string
	transcript string
	intentJSON string
}

func (f *fakeSpeechModel) Transcribe(ctx context.Context, filename string, contentType string, audio []byte, model string) (string, error) {
	*f.calls = append(*f.calls, "transcribe")
	return f.transcript, nil
}

func (f *fakeSpeechModel) ChatCompletionJSON(ctx context.Context, model string, systemPrompt string, userPrompt string) (string, error) {
	*f.calls = append(*f.calls, "classify")
	return f.intentJSON, nil
}

type fakeRecordingStore struct {
	calls   *[]string
	created []*repository.Recording
}

func (f *fakeRecordingStore) Create(recording *repository.Recording) (*repository.Recording, error) {
	*f.calls = append(*f.calls, "insert_recording")
	recording.Id = "rec-1"
	f.created = append(f.created, recording)
	return recording, nil
}

func (f *fakeRecordingStore) GetRecordingsForUser(userId string) ([]*repository.Recording, error) {
	return f.created, nil
}

type fakeTranscriptStore struct {
	calls   *[]string
	created []*repository.Transcript
}

func (f *fakeTranscriptStore) Create(transcript *repository.Transcript) (*repository.Transcript, error) {
	*f.calls = append(*f.calls, "insert_transcript")
	f.created = append(f.created, transcript)
	return transcript, nil
}

type fakeVoiceIntentStore struct {
	calls   *[]string
	failing bool
	created []*repository.VoiceIntent
}

func (f *fakeVoiceIntentStore) Create(intent *repository.VoiceIntent) (*repository.VoiceIntent, error) {
	*f.calls = append(*f.calls, "insert_intent")
	if f.failing {
		return nil, assert.AnError
	}
	f.created = append(f.created, intent)
	return intent, nil
}

func newVoicePipeline(calls *[]string, speech *fakeSpeechModel) (*VoiceService, *fakeRecordingStore, *fakeTranscriptStore, *fakeVoiceIntentStore) {
	recordings := &fakeRecordingStore{calls: calls}
	transcripts := &fakeTranscriptStore{calls: calls}
	intents := &fakeVoiceIntentStore{calls: calls}
	service := &VoiceService{
		store:                 &fakeObjectStore{calls: calls, audio: []byte("webm-bytes")},
		openai:                speech,
		recordingRepository:   recordings,
		transcriptRepository:  transcripts,
		voiceIntentRepository: intents,
	}
	return service, recordings, transcripts, intents
}

func TestProcessRecordingPersistsInOrder(t *testing.T) {
	calls := make([]string, 0)
	speech := &fakeSpeechModel{
		calls:      &calls,
		transcript: "drive down the left side",
		intentJSON: `{"intent":"log_shot","confidence":0.92,"payload":{"club":"driver"}}`,
	}
	service, recordings, transcripts, intents := newVoicePipeline(&calls, speech)

	result, err := service.ProcessRecording(context.Background(), "user-1", "user-1/memo.webm")
	assert.Nil(t, err)
	assert.Equal(t, []string{"sign", "fetch", "transcribe", "insert_recording", "insert_transcript", "classify", "insert_intent"}, calls)

	assert.Equal(t, "rec-1", result.RecordingId)
	assert.Equal(t, repository.IntentLogShot, result.Intent)
	assert.Equal(t, 0.92, result.Confidence)

	assert.Equal(t, "user-1/memo.webm", recordings.created[0].Path)
	assert.Equal(t, "rec-1", transcripts.created[0].RecordingId)
	assert.Equal(t, "drive down the left side", transcripts.created[0].Text)
	assert.Equal(t, "rec-1", intents.created[0].RecordingId)
}

func TestProcessRecordingEmptyTranscriptFails(t *testing.T) {
	calls := make([]string, 0)
	speech := &fakeSpeechModel{calls: &calls, transcript: ""}
	service, recordings, _, _ := newVoicePipeline(&calls, speech)

	_, err := service.ProcessRecording(context.Background(), "user-1", "user-1/memo.webm")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "empty text")
	// nothing was persisted
	assert.Len(t, recordings.created, 0)
	assert.Equal(t, []string{"sign", "fetch", "transcribe"}, calls)
}

func TestProcessRecordingNonJSONIntentFallsBackToNote(t *testing.T) {
	calls := make([]string, 0)
	speech := &fakeSpeechModel{
		calls:      &calls,
		transcript: "wind is picking up",
		intentJSON: "I could not parse that, sorry!",
	}
	service, _, _, intents := newVoicePipeline(&calls, speech)

	result, err := service.ProcessRecording(context.Background(), "user-1", "user-1/memo.webm")
	assert.Nil(t, err)
	assert.Equal(t, repository.IntentNote, result.Intent)
	assert.Equal(t, 0.3, result.Confidence)
	assert.JSONEq(t, `{"raw":"I could not parse that, sorry!"}`, string(intents.created[0].Payload))
}

func TestProcessRecordingIntentFailureLeavesEarlierRows(t *testing.T) {
	calls := make([]string, 0)
	speech := &fakeSpeechModel{
		calls:      &calls,
		transcript: "pin is back right",
		intentJSON: `{"intent":"set_pin","confidence":0.8,"payload":{}}`,
	}
	service, recordings, transcripts, intents := newVoicePipeline(&calls, speech)
	intents.failing = true

	_, err := service.ProcessRecording(context.Background(), "user-1", "user-1/memo.webm")
	assert.NotNil(t, err)
	// earlier rows stay in place, there is no compensation
	assert.Len(t, recordings.created, 1)
	assert.Len(t, transcripts.created, 1)
}
