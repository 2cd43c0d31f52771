package models

type Stats struct {
	Played           int64   `json:"played"`
	Won              int64   `json:"won"`
	Drawn            int64   `json:"drawn"`
	Lost             int64   `json:"lost"`
	GoalsFor         int64   `json:"goals_for"`
	GoalsAgainst     int64   `json:"goals_against"`
	ShootoutsWon     int64   `json:"shootouts_won"`
	ShootoutsLost    int64   `json:"shootouts_lost"`
	MatchesLast7Days int64   `json:"matches_last_7_days"`
	Rating           float64 `json:"rating"`
	PeakRating       float64 `json:"peak_rating"`
}
