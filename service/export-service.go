package service

import (
	"strconv"
	"strings"

	"verdiq/repository"
	"verdiq/utils"

	"gorm.io/gorm"
)

const RoundsCSVHeader = "round_id,date_played,course_name,score,strokes_gained_total,hole,par,strokes,putts,start_lie,start_y,end_lie,end_y,sg_true,notes"

const HolesCSVHeader = "round_id,date_played,course_name,hole,par,strokes,putts,start_lie,start_y,end_lie,end_y,sg_true,notes"

type exportRoundStore interface {
	GetRounds(filter repository.RoundFilter) ([]*repository.Round, error)
}

type exportHoleStore interface {
	GetHolesForRounds(roundIds []string, startLie *repository.Lie, endLie *repository.Lie) ([]*repository.Hole, error)
	CountByRound(roundIds []string) (map[string]int, error)
}

type ExportService struct {
	roundRepository exportRoundStore
	holeRepository  exportHoleStore
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		roundRepository: repository.NewRoundRepository(db),
		holeRepository:  repository.NewHoleRepository(db),
	}
}

// ExportRounds renders the rounds CSV: one line per hole, or a single
// placeholder line with empty hole fields for a round without hole rows.
// The hole-count filter here is derived by counting actual hole rows, unlike
// the dashboard which trusts the stored hole_count.
func (s *ExportService) ExportRounds(filter repository.RoundFilter, holes string) (string, error) {
	rounds, err := s.roundRepository.GetRounds(filter)
	if err != nil {
		return "", err
	}

	roundIds := utils.Map(rounds, func(r *repository.Round) string { return r.Id })
	if holes == "9" || holes == "18" {
		want := 9
		if holes == "18" {
			want = 18
		}
		counts, err := s.holeRepository.CountByRound(roundIds)
		if err != nil {
			return "", err
		}
		rounds = utils.Filter(rounds, func(r *repository.Round) bool {
			return counts[r.Id] == want
		})
		roundIds = utils.Map(rounds, func(r *repository.Round) string { return r.Id })
	}

	allHoles, err := s.holeRepository.GetHolesForRounds(roundIds, nil, nil)
	if err != nil {
		return "", err
	}
	holesByRound := make(map[string][]*repository.Hole)
	for _, hole := range allHoles {
		holesByRound[hole.RoundId] = append(holesByRound[hole.RoundId], hole)
	}

	lines := []string{RoundsCSVHeader}
	for _, round := range rounds {
		roundCells := []string{
			round.Id,
			round.DatePlayed,
			quoteCSV(strPtr(round.CourseName)),
			intCell(round.Score),
			floatCell(round.StrokesGainedTotal),
		}
		roundHoles := holesByRound[round.Id]
		if len(roundHoles) == 0 {
			lines = append(lines, strings.Join(append(roundCells, "", "", "", "", "", "", "", "", "", ""), ","))
			continue
		}
		for _, hole := range roundHoles {
			cells := append(append([]string{}, roundCells...),
				strconv.Itoa(hole.Number),
				intCell(hole.Par),
				intCell(hole.Strokes),
				intCell(hole.Putts),
				lieCell(hole.StartLie),
				floatCell(hole.StartDistanceY),
				lieCell(hole.EndLie),
				floatCell(hole.EndDistanceY),
				floatCell(hole.SgTrue),
				quoteCSV(strPtr(hole.Notes)),
			)
			lines = append(lines, strings.Join(cells, ","))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// ExportHoles renders the holes CSV with optional start/end lie filters.
func (s *ExportService) ExportHoles(filter repository.RoundFilter, startLie *repository.Lie, endLie *repository.Lie) (string, error) {
	rounds, err := s.roundRepository.GetRounds(filter)
	if err != nil {
		return "", err
	}
	roundById := make(map[string]*repository.Round)
	roundIds := make([]string, 0, len(rounds))
	for _, round := range rounds {
		roundById[round.Id] = round
		roundIds = append(roundIds, round.Id)
	}

	holes, err := s.holeRepository.GetHolesForRounds(roundIds, startLie, endLie)
	if err != nil {
		return "", err
	}

	lines := []string{HolesCSVHeader}
	for _, hole := range holes {
		round := roundById[hole.RoundId]
		lines = append(lines, strings.Join([]string{
			hole.RoundId,
			round.DatePlayed,
			quoteCSV(strPtr(round.CourseName)),
			strconv.Itoa(hole.Number),
			intCell(hole.Par),
			intCell(hole.Strokes),
			intCell(hole.Putts),
			lieCell(hole.StartLie),
			floatCell(hole.StartDistanceY),
			lieCell(hole.EndLie),
			floatCell(hole.EndDistanceY),
			floatCell(hole.SgTrue),
			quoteCSV(strPtr(hole.Notes)),
		}, ","))
	}
	return strings.Join(lines, "\n"), nil
}

// quoteCSV always quotes text cells, doubling any embedded quote characters.
func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func lieCell(l *repository.Lie) string {
	if l == nil {
		return ""
	}
	return string(*l)
}
