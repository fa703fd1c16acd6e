package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"verdiq/metrics"
	"verdiq/storage"

	"github.com/google/uuid"
)

type RecorderStatus string

const (
	RecorderIdle       RecorderStatus = "idle"
	RecorderCapturing  RecorderStatus = "capturing"
	RecorderPaused     RecorderStatus = "paused"
	RecorderStopped    RecorderStatus = "stopped"
	RecorderUploading  RecorderStatus = "uploading"
	RecorderProcessing RecorderStatus = "processing"
	RecorderDone       RecorderStatus = "done"
	RecorderFailed     RecorderStatus = "failed"
)

// CaptureSession buffers audio chunks for one websocket recorder connection.
// Chunks travel through the intake channel to a collector goroutine; Stop
// closes the intake and waits for the collector to drain before the audio
// object is assembled. Reading the buffer before that flush completes would
// truncate the audio.
type CaptureSession struct {
	Id     string
	UserId string

	mu      sync.Mutex
	status  RecorderStatus
	chunks  [][]byte
	closed  bool
	intake  chan []byte
	flushed chan struct{}
}

func newCaptureSession(userId string) *CaptureSession {
	s := &CaptureSession{
		Id:      uuid.NewString(),
		UserId:  userId,
		status:  RecorderIdle,
		chunks:  make([][]byte, 0),
		intake:  make(chan []byte, 64),
		flushed: make(chan struct{}),
	}
	go s.collect()
	return s
}

func (s *CaptureSession) collect() {
	for chunk := range s.intake {
		s.mu.Lock()
		s.chunks = append(s.chunks, chunk)
		s.mu.Unlock()
	}
	close(s.flushed)
}

func (s *CaptureSession) Status() RecorderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *CaptureSession) setStatus(status RecorderStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *CaptureSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != RecorderIdle {
		return fmt.Errorf("cannot start capture from status %q", s.status)
	}
	s.status = RecorderCapturing
	return nil
}

func (s *CaptureSession) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != RecorderCapturing {
		return fmt.Errorf("cannot pause capture from status %q", s.status)
	}
	s.status = RecorderPaused
	return nil
}

func (s *CaptureSession) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != RecorderPaused {
		return fmt.Errorf("cannot resume capture from status %q", s.status)
	}
	s.status = RecorderCapturing
	return nil
}

// Append queues an audio chunk. Chunks sent while paused or before start are
// rejected rather than silently buffered. The send happens under the mutex so
// it cannot race with closeIntake.
func (s *CaptureSession) Append(chunk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.status != RecorderCapturing {
		return fmt.Errorf("cannot accept audio in status %q", s.status)
	}
	data := make([]byte, len(chunk))
	copy(data, chunk)
	s.intake <- data
	return nil
}

// closeIntake shuts down the collector goroutine exactly once. It is safe to
// call both from Stop and from a session teardown that never saw a stop
// command.
func (s *CaptureSession) closeIntake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.intake)
}

// Stop ends the capture and returns the assembled audio, blocking until all
// buffered chunks have been flushed.
func (s *CaptureSession) Stop() ([]byte, error) {
	s.mu.Lock()
	if s.status != RecorderCapturing && s.status != RecorderPaused {
		status := s.status
		s.mu.Unlock()
		return nil, fmt.Errorf("cannot stop capture from status %q", status)
	}
	s.status = RecorderStopped
	s.mu.Unlock()

	s.closeIntake()
	<-s.flushed

	s.mu.Lock()
	defer s.mu.Unlock()
	audio := bytes.Join(s.chunks, nil)
	s.chunks = nil
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio captured")
	}
	return audio, nil
}

type RecorderService struct {
	store        storage.ObjectStore
	voiceService *VoiceService

	mu       sync.Mutex
	sessions map[string]*CaptureSession
}

func NewRecorderService(store storage.ObjectStore, voiceService *VoiceService) *RecorderService {
	return &RecorderService{
		store:        store,
		voiceService: voiceService,
		sessions:     make(map[string]*CaptureSession),
	}
}

func (s *RecorderService) OpenSession(userId string) *CaptureSession {
	session := newCaptureSession(userId)
	s.mu.Lock()
	s.sessions[session.Id] = session
	s.mu.Unlock()
	metrics.RecorderSessionsGauge.Inc()
	return session
}

// CloseSession removes the session from tracking and shuts down its collector
// goroutine. A client that disconnects without ever sending a stop command
// would otherwise leave the collector blocked on the intake channel forever.
func (s *RecorderService) CloseSession(session *CaptureSession) {
	s.mu.Lock()
	if _, ok := s.sessions[session.Id]; ok {
		delete(s.sessions, session.Id)
		metrics.RecorderSessionsGauge.Dec()
	}
	s.mu.Unlock()
	session.closeIntake()
}

// Finish uploads the assembled audio under the user's storage prefix and
// runs the processing pipeline on the persisted object.
func (s *RecorderService) Finish(ctx context.Context, session *CaptureSession, name string, audio []byte) (*ProcessResult, error) {
	if name == "" {
		name = fmt.Sprintf("verdiq-%s", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	}
	path := fmt.Sprintf("%s/%s.webm", session.UserId, name)

	session.setStatus(RecorderUploading)
	if err := s.store.Upload(ctx, path, "audio/webm", bytes.NewReader(audio)); err != nil {
		session.setStatus(RecorderFailed)
		return nil, err
	}

	session.setStatus(RecorderProcessing)
	result, err := s.voiceService.ProcessRecording(ctx, session.UserId, path)
	if err != nil {
		session.setStatus(RecorderFailed)
		return nil, err
	}
	session.setStatus(RecorderDone)
	return result, nil
}
