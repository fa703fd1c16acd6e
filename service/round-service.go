package service

import (
	"fmt"

	"verdiq/app_error"
	"verdiq/repository"
	"verdiq/scoring"
	"verdiq/utils"

	"gorm.io/gorm"
)

// updatableFields is the allow-list for partial round updates; anything else
// in the request body is dropped.
var updatableFields = []string{
	"date_played",
	"course_name",
	"hole_count",
	"score",
	"strokes_gained_total",
	"sg_offtee",
	"sg_approach",
	"sg_short",
	"sg_putting",
}

type RoundService struct {
	roundRepository *repository.RoundRepository
}

func NewRoundService(db *gorm.DB) *RoundService {
	return &RoundService{
		roundRepository: repository.NewRoundRepository(db),
	}
}

func (s *RoundService) CreateRound(round *repository.Round) (*repository.Round, error) {
	return s.roundRepository.Create(round)
}

func (s *RoundService) GetRoundById(roundId string) (*repository.Round, error) {
	return s.roundRepository.GetRoundById(roundId)
}

// PatchRound applies a partial update. Unknown fields are ignored, the
// strokes-gained total is reconciled per scoring.Reconcile, and only the
// surviving fields are written.
func (s *RoundService) PatchRound(roundId string, body map[string]interface{}) error {
	fields := make(map[string]interface{})
	for _, key := range updatableFields {
		if value, ok := body[key]; ok {
			fields[key] = value
		}
	}

	fields, err := scoring.Reconcile(fields)
	if err != nil {
		return app_error.New(err, 400)
	}
	if err := normalizeInts(fields, "hole_count", "score"); err != nil {
		return app_error.New(err, 400)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.roundRepository.UpdateFields(roundId, fields)
}

func (s *RoundService) DeleteRound(roundId string) error {
	return s.roundRepository.Delete(roundId)
}

// GetRounds lists rounds matching the filter. holes is "9", "18" or "all"
// and is matched against the stored hole_count field.
func (s *RoundService) GetRounds(filter repository.RoundFilter, holes string) ([]*repository.Round, error) {
	rounds, err := s.roundRepository.GetRounds(filter)
	if err != nil {
		return nil, err
	}
	want := 0
	switch holes {
	case "9":
		want = 9
	case "18":
		want = 18
	default:
		return rounds, nil
	}
	return utils.Filter(rounds, func(round *repository.Round) bool {
		return round.HoleCount != nil && *round.HoleCount == want
	}), nil
}

// normalizeInts converts JSON numbers destined for integer columns, leaving
// explicit nulls alone.
func normalizeInts(fields map[string]interface{}, keys ...string) error {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		n, isFloat := value.(float64)
		if !isFloat {
			return fmt.Errorf("%s must be a number", key)
		}
		fields[key] = int(n)
	}
	return nil
}
