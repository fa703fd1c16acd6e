package repository

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntentKind is the closed set of classifications the intent model may emit.
type IntentKind string

const (
	IntentLogShot   IntentKind = "log_shot"
	IntentSetPin    IntentKind = "set_pin"
	IntentSetWind   IntentKind = "set_wind"
	IntentAskAdvice IntentKind = "ask_advice"
	IntentNote      IntentKind = "note"
)

func (i IntentKind) Valid() bool {
	switch i {
	case IntentLogShot, IntentSetPin, IntentSetWind, IntentAskAdvice, IntentNote:
		return true
	}
	return false
}

type VoiceIntent struct {
	Id          string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RecordingId string         `gorm:"not null;type:uuid;index"`
	Intent      IntentKind     `gorm:"not null;type:verdiq.voice_intent_kind"`
	Confidence  float64        `gorm:"not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:""`
	Recording   *Recording     `gorm:"foreignKey:RecordingId;constraint:OnDelete:CASCADE"`
}

type VoiceIntentRepository struct {
	DB *gorm.DB
}

func NewVoiceIntentRepository(db *gorm.DB) *VoiceIntentRepository {
	return &VoiceIntentRepository{DB: db}
}

func (r *VoiceIntentRepository) Create(intent *VoiceIntent) (*VoiceIntent, error) {
	result := r.DB.Create(intent)
	if result.Error != nil {
		return nil, result.Error
	}
	return intent, nil
}
