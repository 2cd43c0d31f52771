package engine

import (
	"fmt"
	"sort"

	"bab-arcade/packages/core/models"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// ComputeTable folds every played fixture into a fresh table. Inputs are not
// modified; unplayed fixtures are skipped.
func ComputeTable(competitors []models.Competitor, fixtures []models.Fixture) ([]models.LeagueTableRow, error) {
	rows := make([]models.LeagueTableRow, len(competitors))
	index := make(map[string]int, len(competitors))
	for i, c := range competitors {
		rows[i] = models.LeagueTableRow{Team: c}
		index[c.Code] = i
	}

	for _, f := range fixtures {
		if f.Result == nil {
			continue
		}
		i, ok := index[f.Team1.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %q (round %d)", ErrUnknownCompetitor, f.Team1.Code, f.Round)
		}
		j, ok := index[f.Team2.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %q (round %d)", ErrUnknownCompetitor, f.Team2.Code, f.Round)
		}

		home, away := &rows[i], &rows[j]
		s1, s2 := f.Result.Team1Score, f.Result.Team2Score

		home.Played++
		away.Played++
		home.GoalsFor += s1
		home.GoalsAgainst += s2
		away.GoalsFor += s2
		away.GoalsAgainst += s1

		switch {
		case s1 > s2:
			home.Won++
			home.Points += PointsForWin
			away.Lost++
		case s2 > s1:
			away.Won++
			away.Points += PointsForWin
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += PointsForDraw
			away.Points += PointsForDraw
		}
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rankBefore(rows[i], rows[j])
	})

	return rows, nil
}

func rankBefore(a, b models.LeagueTableRow) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.Team.Name < b.Team.Name
}
