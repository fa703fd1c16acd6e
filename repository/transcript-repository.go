package repository

import (
	"time"

	"gorm.io/gorm"
)

type Transcript struct {
	Id          string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RecordingId string     `gorm:"not null;type:uuid;index"`
	Text        string     `gorm:"not null"`
	Model       string     `gorm:"not null"`
	CreatedAt   time.Time  `gorm:""`
	Recording   *Recording `gorm:"foreignKey:RecordingId;constraint:OnDelete:CASCADE"`
}

type TranscriptRepository struct {
	DB *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{DB: db}
}

func (r *TranscriptRepository) Create(transcript *Transcript) (*Transcript, error) {
	result := r.DB.Create(transcript)
	if result.Error != nil {
		return nil, result.Error
	}
	return transcript, nil
}
