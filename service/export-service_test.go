package service

import (
	"strings"
	"testing"

	"verdiq/repository"

	"github.com/stretchr/testify/assert"
)

func strp(v string) *string     { return &v }
func floatp(v float64) *float64 { return &v }

type fakeExportRoundStore struct {
	rounds []*repository.Round
}

func (f *fakeExportRoundStore) GetRounds(filter repository.RoundFilter) ([]*repository.Round, error) {
	return f.rounds, nil
}

type fakeExportHoleStore struct {
	holes  []*repository.Hole
	counts map[string]int
}

func (f *fakeExportHoleStore) GetHolesForRounds(roundIds []string, startLie *repository.Lie, endLie *repository.Lie) ([]*repository.Hole, error) {
	included := make(map[string]bool)
	for _, id := range roundIds {
		included[id] = true
	}
	holes := make([]*repository.Hole, 0)
	for _, hole := range f.holes {
		if !included[hole.RoundId] {
			continue
		}
		if startLie != nil && (hole.StartLie == nil || *hole.StartLie != *startLie) {
			continue
		}
		if endLie != nil && (hole.EndLie == nil || *hole.EndLie != *endLie) {
			continue
		}
		holes = append(holes, hole)
	}
	return holes, nil
}

func (f *fakeExportHoleStore) CountByRound(roundIds []string) (map[string]int, error) {
	return f.counts, nil
}

func TestExportRoundsQuotesTextFields(t *testing.T) {
	tee := repository.LieTee
	green := repository.LieGreen
	service := &ExportService{
		roundRepository: &fakeExportRoundStore{rounds: []*repository.Round{
			{Id: "r1", DatePlayed: "2026-05-01", CourseName: strp(`O"Hare Club`), Score: intp(74), StrokesGainedTotal: floatp(1.5)},
		}},
		holeRepository: &fakeExportHoleStore{holes: []*repository.Hole{
			{RoundId: "r1", Number: 1, Par: intp(4), Strokes: intp(4), Putts: intp(2), StartLie: &tee, StartDistanceY: floatp(420), EndLie: &green, EndDistanceY: floatp(0), SgTrue: floatp(0.2), Notes: strp("good, solid drive")},
		}},
	}

	csv, err := service.ExportRounds(repository.RoundFilter{}, "all")
	assert.Nil(t, err)
	lines := strings.Split(csv, "\n")
	assert.Equal(t, RoundsCSVHeader, lines[0])
	assert.Equal(t, `r1,2026-05-01,"O""Hare Club",74,1.5,1,4,4,2,tee,420,green,0,0.2,"good, solid drive"`, lines[1])
}

func TestExportRoundsPlaceholderForEmptyRound(t *testing.T) {
	service := &ExportService{
		roundRepository: &fakeExportRoundStore{rounds: []*repository.Round{
			{Id: "r1", DatePlayed: "2026-05-01", CourseName: strp("Pine Valley"), Score: intp(80)},
		}},
		holeRepository: &fakeExportHoleStore{},
	}

	csv, err := service.ExportRounds(repository.RoundFilter{}, "all")
	assert.Nil(t, err)
	lines := strings.Split(csv, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, `r1,2026-05-01,"Pine Valley",80,,,,,,,,,,,`, lines[1])
	// every line has the full column count
	assert.Equal(t, len(strings.Split(lines[0], ",")), len(strings.Split(lines[1], ",")))
}

func TestExportRoundsDerivedHoleCountFilter(t *testing.T) {
	service := &ExportService{
		roundRepository: &fakeExportRoundStore{rounds: []*repository.Round{
			{Id: "r1", DatePlayed: "2026-05-01"},
			{Id: "r2", DatePlayed: "2026-05-02"},
		}},
		holeRepository: &fakeExportHoleStore{
			counts: map[string]int{"r1": 9, "r2": 18},
			holes: []*repository.Hole{
				{RoundId: "r1", Number: 1},
				{RoundId: "r2", Number: 1},
			},
		},
	}

	csv, err := service.ExportRounds(repository.RoundFilter{}, "9")
	assert.Nil(t, err)
	assert.Contains(t, csv, "r1,")
	assert.NotContains(t, csv, "r2,")
}

func TestExportHolesLieFilter(t *testing.T) {
	sand := repository.LieSand
	tee := repository.LieTee
	service := &ExportService{
		roundRepository: &fakeExportRoundStore{rounds: []*repository.Round{
			{Id: "r1", DatePlayed: "2026-05-01", CourseName: strp("Pine Valley")},
		}},
		holeRepository: &fakeExportHoleStore{holes: []*repository.Hole{
			{RoundId: "r1", Number: 1, StartLie: &tee},
			{RoundId: "r1", Number: 2, StartLie: &sand, SgTrue: floatp(-0.4)},
		}},
	}

	csv, err := service.ExportHoles(repository.RoundFilter{}, &sand, nil)
	assert.Nil(t, err)
	lines := strings.Split(csv, "\n")
	assert.Equal(t, HolesCSVHeader, lines[0])
	assert.Len(t, lines, 2)
	assert.Equal(t, `r1,2026-05-01,"Pine Valley",2,,,,sand,,,,-0.4,""`, lines[1])
}
