package service

import (
	"testing"

	"verdiq/repository"

	"github.com/stretchr/testify/assert"
)

func round(id string, date string, score int, sg float64) *repository.Round {
	return &repository.Round{Id: id, DatePlayed: date, Score: intp(score), StrokesGainedTotal: floatp(sg)}
}

func TestBuildDashboardEmpty(t *testing.T) {
	dashboard := buildDashboard([]*repository.Round{})
	assert.Equal(t, 0, dashboard.RoundCount)
	assert.Nil(t, dashboard.AvgScore)
	assert.Nil(t, dashboard.AvgSG)
	assert.Nil(t, dashboard.PersonalBestScore)
	assert.Equal(t, 0, dashboard.PositiveStreak)
	assert.Len(t, dashboard.SGTrend, 0)
}

func TestBuildDashboardAggregates(t *testing.T) {
	dashboard := buildDashboard([]*repository.Round{
		round("r1", "2026-05-01", 80, -1.2),
		round("r2", "2026-05-08", 76, 0.4),
		round("r3", "2026-05-15", 74, 2.0),
	})

	assert.Equal(t, 3, dashboard.RoundCount)
	assert.Equal(t, 76.67, *dashboard.AvgScore)
	assert.Equal(t, 0.4, *dashboard.AvgSG)
	assert.Equal(t, 2.0, *dashboard.BestSG)
	assert.Equal(t, -1.2, *dashboard.WorstSG)
	assert.Equal(t, 74, *dashboard.PersonalBestScore)
	assert.Equal(t, "r3", *dashboard.PersonalBestRound)
}

func TestBuildDashboardPositiveStreak(t *testing.T) {
	dashboard := buildDashboard([]*repository.Round{
		round("r1", "2026-05-01", 80, 1.0),
		round("r2", "2026-05-08", 78, -0.2),
		round("r3", "2026-05-15", 76, 0.5),
		round("r4", "2026-05-22", 75, 1.1),
	})
	// the streak counts back from the latest round and stops at r2
	assert.Equal(t, 2, dashboard.PositiveStreak)
}

func TestBuildDashboardStreakResetsOnZero(t *testing.T) {
	dashboard := buildDashboard([]*repository.Round{
		round("r1", "2026-05-01", 80, 0.0),
		round("r2", "2026-05-08", 78, 0.3),
	})
	assert.Equal(t, 1, dashboard.PositiveStreak)
}

func TestBuildDashboardTrendRolling(t *testing.T) {
	dashboard := buildDashboard([]*repository.Round{
		round("r1", "2026-05-01", 80, 1.0),
		round("r2", "2026-05-08", 78, 2.0),
		round("r3", "2026-05-15", 76, 3.0),
	})

	assert.Len(t, dashboard.SGTrend, 3)
	assert.Equal(t, 1.0, dashboard.SGTrend[0].Rolling)
	assert.Equal(t, 1.5, dashboard.SGTrend[1].Rolling)
	assert.Equal(t, 2.0, dashboard.SGTrend[2].Rolling)

	assert.Len(t, dashboard.ScoreTrend, 3)
	assert.Equal(t, 80.0, dashboard.ScoreTrend[0].Value)
	assert.Equal(t, 78.0, dashboard.ScoreTrend[2].Rolling)
}

func TestBuildDashboardSkipsMissingValues(t *testing.T) {
	noScore := &repository.Round{Id: "r2", DatePlayed: "2026-05-08", StrokesGainedTotal: floatp(0.5)}
	dashboard := buildDashboard([]*repository.Round{
		round("r1", "2026-05-01", 80, 1.0),
		noScore,
	})

	assert.Equal(t, 2, dashboard.RoundCount)
	assert.Equal(t, 80.0, *dashboard.AvgScore)
	assert.Len(t, dashboard.ScoreTrend, 1)
	assert.Len(t, dashboard.SGTrend, 2)
}

func TestBuildDashboardPhaseAverages(t *testing.T) {
	rounds := []*repository.Round{
		{Id: "r1", DatePlayed: "2026-05-01", SgOfftee: floatp(0.5), SgPutting: floatp(-1.0)},
		{Id: "r2", DatePlayed: "2026-05-08", SgOfftee: floatp(1.5)},
	}
	dashboard := buildDashboard(rounds)

	assert.Equal(t, 1.0, *dashboard.PhaseAverages.OffTee)
	assert.Equal(t, -1.0, *dashboard.PhaseAverages.Putting)
	assert.Nil(t, dashboard.PhaseAverages.Approach)
}

func TestRollingAvgWindow(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	rolling := rollingAvg(values, 5)
	// once the window is full, only the trailing five values count
	assert.Equal(t, 3.0, rolling[4])
	assert.Equal(t, 4.0, rolling[5])
	assert.Equal(t, 5.0, rolling[6])
}
