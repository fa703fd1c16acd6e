package repository

import (
	"time"

	"gorm.io/gorm"
)

// VoiceMemo is the hole-editor logging path. It is deliberately independent
// of Recording/Transcript rows; the two capture flows write different tables.
type VoiceMemo struct {
	Id         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserId     string    `gorm:"not null;type:uuid;index"`
	RoundId    *string   `gorm:"type:uuid"`
	HoleId     *string   `gorm:"type:uuid"`
	AudioUrl   string    `gorm:"not null"`
	Transcript string    `gorm:""`
	CreatedAt  time.Time `gorm:""`
}

type VoiceMemoRepository struct {
	DB *gorm.DB
}

func NewVoiceMemoRepository(db *gorm.DB) *VoiceMemoRepository {
	return &VoiceMemoRepository{DB: db}
}

func (r *VoiceMemoRepository) Create(memo *VoiceMemo) (*VoiceMemo, error) {
	result := r.DB.Create(memo)
	if result.Error != nil {
		return nil, result.Error
	}
	return memo, nil
}

func (r *VoiceMemoRepository) GetMemosForRound(roundId string) ([]*VoiceMemo, error) {
	memos := make([]*VoiceMemo, 0)
	result := r.DB.Order("created_at desc").Find(&memos, "round_id = ?", roundId)
	if result.Error != nil {
		return nil, result.Error
	}
	return memos, nil
}
