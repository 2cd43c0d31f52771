package models

import (
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeQuick      Mode = "quick"
	ModeLeague     Mode = "league"
	ModeTournament Mode = "tournament"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeQuick, ModeLeague, ModeTournament:
		return true
	}
	return false
}

// Difficulty is handed to the gameplay surface and the shootout untouched.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// MatchRecord is one match played by a human, kept for history and stats.
type MatchRecord struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID      uint       `gorm:"not null;index" json:"profile_id"`
	Mode           Mode       `gorm:"size:20;not null" json:"mode"`
	Difficulty     Difficulty `gorm:"size:20;not null" json:"difficulty"`
	TrackedCode    string     `gorm:"size:8;not null" json:"tracked"`
	Team1Code      string     `gorm:"size:8;not null" json:"team1"`
	Team2Code      string     `gorm:"size:8;not null" json:"team2"`
	Team1Score     int        `gorm:"not null" json:"team1_score"`
	Team2Score     int        `gorm:"not null" json:"team2_score"`
	Team1Penalties *int       `json:"team1_penalties,omitempty"`
	Team2Penalties *int       `json:"team2_penalties,omitempty"`
	WinnerCode     string     `gorm:"size:8" json:"winner,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}

func (MatchRecord) TableName() string {
	return "match_records"
}

func (r MatchRecord) Result() MatchResult {
	return MatchResult{
		Team1Score:     r.Team1Score,
		Team2Score:     r.Team2Score,
		Team1Penalties: r.Team1Penalties,
		Team2Penalties: r.Team2Penalties,
	}
}

type PaginatedMatchRecordResponse struct {
	Data       []MatchRecord `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
