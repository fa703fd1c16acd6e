package service

import (
	"math"

	"verdiq/repository"

	"gorm.io/gorm"
)

const rollingWindow = 5

type TrendPoint struct {
	RoundId    string  `json:"round_id"`
	DatePlayed string  `json:"date_played"`
	Value      float64 `json:"value"`
	Rolling    float64 `json:"rolling"`
}

type PhaseAverages struct {
	OffTee   *float64 `json:"sg_offtee"`
	Approach *float64 `json:"sg_approach"`
	Short    *float64 `json:"sg_short"`
	Putting  *float64 `json:"sg_putting"`
}

type Dashboard struct {
	RoundCount        int           `json:"round_count"`
	AvgScore          *float64      `json:"avg_score"`
	AvgSG             *float64      `json:"avg_sg"`
	BestSG            *float64      `json:"best_sg"`
	WorstSG           *float64      `json:"worst_sg"`
	PersonalBestScore *int          `json:"personal_best_score"`
	PersonalBestRound *string       `json:"personal_best_round_id"`
	PositiveStreak    int           `json:"positive_streak"`
	SGTrend           []TrendPoint  `json:"sg_trend"`
	ScoreTrend        []TrendPoint  `json:"score_trend"`
	PhaseAverages     PhaseAverages `json:"phase_averages"`
}

type DashboardService struct {
	roundService *RoundService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		roundService: NewRoundService(db),
	}
}

// GetDashboard aggregates the filtered rounds. The hole-count filter trusts
// the stored hole_count column; exports derive counts from hole rows instead,
// so the two views can disagree for rounds whose holes changed after the
// count was set.
func (s *DashboardService) GetDashboard(filter repository.RoundFilter, holes string) (*Dashboard, error) {
	rounds, err := s.roundService.GetRounds(filter, holes)
	if err != nil {
		return nil, err
	}
	return buildDashboard(rounds), nil
}

func buildDashboard(rounds []*repository.Round) *Dashboard {
	dashboard := &Dashboard{
		RoundCount: len(rounds),
		SGTrend:    make([]TrendPoint, 0),
		ScoreTrend: make([]TrendPoint, 0),
	}

	scores := make([]float64, 0)
	sgs := make([]float64, 0)
	for _, round := range rounds {
		if round.Score != nil {
			scores = append(scores, float64(*round.Score))
			if dashboard.PersonalBestScore == nil || *round.Score < *dashboard.PersonalBestScore {
				score := *round.Score
				id := round.Id
				dashboard.PersonalBestScore = &score
				dashboard.PersonalBestRound = &id
			}
		}
		if round.StrokesGainedTotal != nil {
			sgs = append(sgs, *round.StrokesGainedTotal)
		}
	}

	dashboard.AvgScore = avg(scores)
	dashboard.AvgSG = avg(sgs)
	if len(sgs) > 0 {
		best, worst := sgs[0], sgs[0]
		for _, sg := range sgs {
			best = math.Max(best, sg)
			worst = math.Min(worst, sg)
		}
		dashboard.BestSG = &best
		dashboard.WorstSG = &worst
	}

	// latest consecutive rounds with positive strokes gained
	for i := len(sgs) - 1; i >= 0; i-- {
		if sgs[i] <= 0 {
			break
		}
		dashboard.PositiveStreak++
	}

	sgRolling := rollingAvg(sgs, rollingWindow)
	sgIdx := 0
	scoreRolling := rollingAvg(scores, rollingWindow)
	scoreIdx := 0
	for _, round := range rounds {
		if round.StrokesGainedTotal != nil {
			dashboard.SGTrend = append(dashboard.SGTrend, TrendPoint{
				RoundId:    round.Id,
				DatePlayed: round.DatePlayed,
				Value:      *round.StrokesGainedTotal,
				Rolling:    sgRolling[sgIdx],
			})
			sgIdx++
		}
		if round.Score != nil {
			dashboard.ScoreTrend = append(dashboard.ScoreTrend, TrendPoint{
				RoundId:    round.Id,
				DatePlayed: round.DatePlayed,
				Value:      float64(*round.Score),
				Rolling:    scoreRolling[scoreIdx],
			})
			scoreIdx++
		}
	}

	dashboard.PhaseAverages = PhaseAverages{
		OffTee:   avgPtr(rounds, func(r *repository.Round) *float64 { return r.SgOfftee }),
		Approach: avgPtr(rounds, func(r *repository.Round) *float64 { return r.SgApproach }),
		Short:    avgPtr(rounds, func(r *repository.Round) *float64 { return r.SgShort }),
		Putting:  avgPtr(rounds, func(r *repository.Round) *float64 { return r.SgPutting }),
	}

	return dashboard
}

func avg(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := round2(sum / float64(len(values)))
	return &mean
}

func avgPtr(rounds []*repository.Round, get func(*repository.Round) *float64) *float64 {
	values := make([]float64, 0, len(rounds))
	for _, round := range rounds {
		if v := get(round); v != nil {
			values = append(values, *v)
		}
	}
	return avg(values)
}

// rollingAvg computes a trailing mean over at most window values.
func rollingAvg(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for _, v := range values[start : i+1] {
			sum += v
		}
		out[i] = round2(sum / float64(i+1-start))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
