package service

import (
	"verdiq/repository"

	"gorm.io/gorm"
)

type holeStore interface {
	Upsert(hole *repository.Hole) error
	GetHolesForRound(roundId string) ([]*repository.Hole, error)
}

type roundStore interface {
	UpdateFields(roundId string, fields map[string]interface{}) error
}

type HoleService struct {
	holeRepository  holeStore
	roundRepository roundStore
}

func NewHoleService(db *gorm.DB) *HoleService {
	return &HoleService{
		holeRepository:  repository.NewHoleRepository(db),
		roundRepository: repository.NewRoundRepository(db),
	}
}

// SaveHoles upserts the batch one hole at a time, aborting on the first
// failure; holes after the failed one are never attempted and the round
// score stays untouched. On success the round score is recomputed as the
// stroke sum of the submitted batch, missing strokes counting as zero.
// The batch is not transactional.
func (s *HoleService) SaveHoles(roundId string, holes []*repository.Hole) (int, error) {
	for _, hole := range holes {
		hole.RoundId = roundId
		if err := s.holeRepository.Upsert(hole); err != nil {
			return 0, err
		}
	}

	score := 0
	for _, hole := range holes {
		if hole.Strokes != nil {
			score += *hole.Strokes
		}
	}
	if err := s.roundRepository.UpdateFields(roundId, map[string]interface{}{"score": score}); err != nil {
		return 0, err
	}
	return score, nil
}

func (s *HoleService) GetHolesForRound(roundId string) ([]*repository.Hole, error) {
	return s.holeRepository.GetHolesForRound(roundId)
}
