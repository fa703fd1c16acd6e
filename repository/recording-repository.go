package repository

import (
	"time"

	"gorm.io/gorm"
)

// Recording references an uploaded audio object. Rows are append-only audit
// records and are never updated after insertion.
type Recording struct {
	Id        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserId    string    `gorm:"not null;type:uuid;index"`
	Path      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:""`
}

type RecordingRepository struct {
	DB *gorm.DB
}

func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{DB: db}
}

func (r *RecordingRepository) Create(recording *Recording) (*Recording, error) {
	result := r.DB.Create(recording)
	if result.Error != nil {
		return nil, result.Error
	}
	return recording, nil
}

func (r *RecordingRepository) GetRecordingsForUser(userId string) ([]*Recording, error) {
	recordings := make([]*Recording, 0)
	result := r.DB.Order("created_at desc").Find(&recordings, "user_id = ?", userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return recordings, nil
}
