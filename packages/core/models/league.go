package models

import (
	"time"

	"gorm.io/datatypes"
)

type LeagueTableRow struct {
	Team           Competitor `json:"team"`
	Played         int        `json:"played"`
	Won            int        `json:"won"`
	Drawn          int        `json:"drawn"`
	Lost           int        `json:"lost"`
	GoalsFor       int        `json:"goalsFor"`
	GoalsAgainst   int        `json:"goalsAgainst"`
	GoalDifference int        `json:"goalDifference"`
	Points         int        `json:"points"`
}

// League is the whole state of a round-robin competition. CurrentWeek counts
// the rounds already resolved.
type League struct {
	Fixtures    []Fixture        `json:"fixtures"`
	Table       []LeagueTableRow `json:"table"`
	CurrentWeek int              `json:"currentWeek"`
}

func (l League) TotalRounds() int {
	rounds := 0
	for _, f := range l.Fixtures {
		if f.Round > rounds {
			rounds = f.Round
		}
	}
	return rounds
}

func (l League) Finished() bool {
	return l.CurrentWeek >= l.TotalRounds()
}

func (l League) RoundFixtures(round int) []Fixture {
	var out []Fixture
	for _, f := range l.Fixtures {
		if f.Round == round {
			out = append(out, f)
		}
	}
	return out
}

// NextFixture returns the fixture of the given competitor in the next round,
// or nil when the league is over or the competitor sits this round out.
func (l League) NextFixture(code string) *Fixture {
	if l.Finished() {
		return nil
	}
	for _, f := range l.Fixtures {
		if f.Round == l.CurrentWeek+1 && f.Involves(code) {
			cp := f.Clone()
			return &cp
		}
	}
	return nil
}

func (l League) Clone() League {
	cp := League{CurrentWeek: l.CurrentWeek}
	cp.Fixtures = make([]Fixture, len(l.Fixtures))
	for i, f := range l.Fixtures {
		cp.Fixtures[i] = f.Clone()
	}
	cp.Table = append([]LeagueTableRow(nil), l.Table...)
	return cp
}

// LeagueSave is the stored league of one profile.
type LeagueSave struct {
	ID          uint                       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID   uint                       `gorm:"not null;uniqueIndex" json:"profile_id"`
	TrackedCode string                     `gorm:"size:8;not null" json:"tracked"`
	State       datatypes.JSONType[League] `gorm:"type:jsonb;not null" json:"state"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

func (LeagueSave) TableName() string {
	return "league_saves"
}

type StartLeagueRequest struct {
	Team string `json:"team" binding:"required"`
}

// LeagueView is what the league hub shows.
type LeagueView struct {
	Tracked     Competitor `json:"tracked"`
	League      League     `json:"league"`
	NextFixture *Fixture   `json:"next_fixture,omitempty"`
	ByeWeek     bool       `json:"bye_week"`
	Finished    bool       `json:"finished"`
}
