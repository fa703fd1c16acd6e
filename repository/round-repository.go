package repository

import (
	"time"

	"gorm.io/gorm"
)

type Round struct {
	Id                 string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	DatePlayed         string    `gorm:"not null;index"`
	CourseName         *string   `gorm:""`
	HoleCount          *int      `gorm:""`
	Score              *int      `gorm:""`
	SgOfftee           *float64  `gorm:"column:sg_offtee"`
	SgApproach         *float64  `gorm:"column:sg_approach"`
	SgShort            *float64  `gorm:"column:sg_short"`
	SgPutting          *float64  `gorm:"column:sg_putting"`
	StrokesGainedTotal *float64  `gorm:"column:strokes_gained_total"`
	CreatedAt          time.Time `gorm:""`
	Holes              []*Hole   `gorm:"foreignKey:RoundId;constraint:OnDelete:CASCADE"`
}

// RoundFilter narrows round queries. Date bounds are inclusive and compared
// on the stored YYYY-MM-DD strings, course is a case-insensitive substring.
type RoundFilter struct {
	From   string
	To     string
	Course string
}

type RoundRepository struct {
	DB *gorm.DB
}

func NewRoundRepository(db *gorm.DB) *RoundRepository {
	return &RoundRepository{DB: db}
}

func (r *RoundRepository) GetRoundById(roundId string) (*Round, error) {
	var round Round
	result := r.DB.First(&round, "id = ?", roundId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &round, nil
}

func (r *RoundRepository) Create(round *Round) (*Round, error) {
	result := r.DB.Create(round)
	if result.Error != nil {
		return nil, result.Error
	}
	return round, nil
}

// UpdateFields persists only the given columns, leaving all others untouched.
func (r *RoundRepository) UpdateFields(roundId string, fields map[string]interface{}) error {
	result := r.DB.Model(&Round{}).Where("id = ?", roundId).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoundRepository) Delete(roundId string) error {
	result := r.DB.Delete(&Round{}, "id = ?", roundId)
	return result.Error
}

func (r *RoundRepository) GetRounds(filter RoundFilter) ([]*Round, error) {
	rounds := make([]*Round, 0)
	q := r.DB.Order("date_played asc")
	if filter.From != "" {
		q = q.Where("date_played >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date_played <= ?", filter.To)
	}
	if filter.Course != "" {
		q = q.Where("course_name ILIKE ?", "%"+filter.Course+"%")
	}
	result := q.Find(&rounds)
	if result.Error != nil {
		return nil, result.Error
	}
	return rounds, nil
}
