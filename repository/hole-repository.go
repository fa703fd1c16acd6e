package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Lie is the ball position before or after a shot.
type Lie string

const (
	LieTee      Lie = "tee"
	LieFairway  Lie = "fairway"
	LieRough    Lie = "rough"
	LieSand     Lie = "sand"
	LieRecovery Lie = "recovery"
	LieGreen    Lie = "green"
	LiePenalty  Lie = "penalty"
	LieHoled    Lie = "holed"
)

func Lies() []Lie {
	return []Lie{LieTee, LieFairway, LieRough, LieSand, LieRecovery, LieGreen, LiePenalty, LieHoled}
}

func (l Lie) Valid() bool {
	switch l {
	case LieTee, LieFairway, LieRough, LieSand, LieRecovery, LieGreen, LiePenalty, LieHoled:
		return true
	}
	return false
}

type Hole struct {
	Id             string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoundId        string   `gorm:"not null;type:uuid;uniqueIndex:idx_holes_round_number"`
	Number         int      `gorm:"not null;uniqueIndex:idx_holes_round_number"`
	Par            *int     `gorm:""`
	Strokes        *int     `gorm:""`
	Putts          *int     `gorm:""`
	StartLie       *Lie     `gorm:"type:verdiq.lie"`
	StartDistanceY *float64 `gorm:"column:start_distance_y"`
	EndLie         *Lie     `gorm:"type:verdiq.lie"`
	EndDistanceY   *float64 `gorm:"column:end_distance_y"`
	SgTrue         *float64 `gorm:"column:sg_true"`
	Notes          *string  `gorm:""`
	AudioUrl       *string  `gorm:""`
	Transcript     *string  `gorm:""`
}

type HoleRepository struct {
	DB *gorm.DB
}

func NewHoleRepository(db *gorm.DB) *HoleRepository {
	return &HoleRepository{DB: db}
}

// Upsert inserts or updates a hole keyed on (round_id, number). Fields not
// supplied by the caller overwrite with null, matching a full row save.
func (r *HoleRepository) Upsert(hole *Hole) error {
	result := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "round_id"}, {Name: "number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"par", "strokes", "putts",
			"start_lie", "start_distance_y", "end_lie", "end_distance_y",
			"sg_true", "notes", "audio_url", "transcript",
		}),
	}).Create(hole)
	return result.Error
}

func (r *HoleRepository) GetHolesForRound(roundId string) ([]*Hole, error) {
	holes := make([]*Hole, 0)
	result := r.DB.Order("number asc").Find(&holes, "round_id = ?", roundId)
	if result.Error != nil {
		return nil, result.Error
	}
	return holes, nil
}

func (r *HoleRepository) GetHolesForRounds(roundIds []string, startLie *Lie, endLie *Lie) ([]*Hole, error) {
	holes := make([]*Hole, 0)
	if len(roundIds) == 0 {
		return holes, nil
	}
	q := r.DB.Where("round_id IN ?", roundIds).Order("round_id asc").Order("number asc")
	if startLie != nil {
		q = q.Where("start_lie = ?", *startLie)
	}
	if endLie != nil {
		q = q.Where("end_lie = ?", *endLie)
	}
	result := q.Find(&holes)
	if result.Error != nil {
		return nil, result.Error
	}
	return holes, nil
}

// CountByRound returns the number of stored hole rows per round.
func (r *HoleRepository) CountByRound(roundIds []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(roundIds) == 0 {
		return counts, nil
	}
	rows := make([]struct {
		RoundId string
		N       int
	}, 0)
	result := r.DB.Model(&Hole{}).
		Select("round_id, count(*) as n").
		Where("round_id IN ?", roundIds).
		Group("round_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	for _, row := range rows {
		counts[row.RoundId] = row.N
	}
	return counts, nil
}
