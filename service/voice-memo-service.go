package service

import (
	"verdiq/repository"

	"gorm.io/gorm"
)

type VoiceMemoService struct {
	voiceMemoRepository *repository.VoiceMemoRepository
}

func NewVoiceMemoService(db *gorm.DB) *VoiceMemoService {
	return &VoiceMemoService{
		voiceMemoRepository: repository.NewVoiceMemoRepository(db),
	}
}

func (s *VoiceMemoService) CreateMemo(memo *repository.VoiceMemo) (*repository.VoiceMemo, error) {
	return s.voiceMemoRepository.Create(memo)
}

func (s *VoiceMemoService) GetMemosForRound(roundId string) ([]*repository.VoiceMemo, error) {
	return s.voiceMemoRepository.GetMemosForRound(roundId)
}
