package models

import (
	"time"

	"gorm.io/datatypes"
)

// TournamentNode is one bracket slot. Later-round slots stay empty until both
// feeding winners are known.
type TournamentNode struct {
	MatchID int          `json:"matchId"`
	Team1   *Competitor  `json:"team1,omitempty"`
	Team2   *Competitor  `json:"team2,omitempty"`
	Result  *MatchResult `json:"result,omitempty"`
	Winner  *Competitor  `json:"winner,omitempty"`
}

func (n TournamentNode) Ready() bool {
	return n.Team1 != nil && n.Team2 != nil
}

func (n TournamentNode) Resolved() bool {
	return n.Result != nil
}

func (n TournamentNode) Involves(code string) bool {
	return (n.Team1 != nil && n.Team1.Code == code) || (n.Team2 != nil && n.Team2.Code == code)
}

func (n TournamentNode) Pairs(a, b Competitor) bool {
	if !n.Ready() {
		return false
	}
	return (n.Team1.Same(a) && n.Team2.Same(b)) || (n.Team1.Same(b) && n.Team2.Same(a))
}

func (n TournamentNode) Clone() TournamentNode {
	return TournamentNode{
		MatchID: n.MatchID,
		Team1:   cloneCompetitor(n.Team1),
		Team2:   cloneCompetitor(n.Team2),
		Result:  cloneResult(n.Result),
		Winner:  cloneCompetitor(n.Winner),
	}
}

// Tournament is an 8-entrant knockout. Every advance produces a new value with
// Version incremented.
type Tournament struct {
	PlayerTeam   Competitor         `json:"playerTeam"`
	Rounds       [][]TournamentNode `json:"rounds"`
	CurrentRound int                `json:"currentRound"`
	Winner       *Competitor        `json:"winner,omitempty"`
	Version      int                `json:"version"`
}

func (t Tournament) Finished() bool {
	return t.Winner != nil
}

func (t Tournament) FinalRound() int {
	return len(t.Rounds) - 1
}

// NextFixture is the tracked competitor's node in the current round, nil when
// the tournament is over or the competitor has been knocked out.
func (t Tournament) NextFixture() *TournamentNode {
	if t.Finished() || t.CurrentRound >= len(t.Rounds) {
		return nil
	}
	for _, n := range t.Rounds[t.CurrentRound] {
		if n.Involves(t.PlayerTeam.Code) && !n.Resolved() {
			cp := n.Clone()
			return &cp
		}
	}
	return nil
}

func (t Tournament) Eliminated() bool {
	return !t.Finished() && t.NextFixture() == nil
}

func (t Tournament) Clone() Tournament {
	cp := Tournament{
		PlayerTeam:   t.PlayerTeam,
		CurrentRound: t.CurrentRound,
		Winner:       cloneCompetitor(t.Winner),
		Version:      t.Version,
	}
	cp.Rounds = make([][]TournamentNode, len(t.Rounds))
	for i, round := range t.Rounds {
		cp.Rounds[i] = make([]TournamentNode, len(round))
		for j, n := range round {
			cp.Rounds[i][j] = n.Clone()
		}
	}
	return cp
}

// TournamentSave is the stored tournament of one profile.
type TournamentSave struct {
	ID        uint                           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint                           `gorm:"not null;uniqueIndex" json:"profile_id"`
	State     datatypes.JSONType[Tournament] `gorm:"type:jsonb;not null" json:"state"`
	CreatedAt time.Time                      `json:"created_at"`
	UpdatedAt time.Time                      `json:"updated_at"`
}

func (TournamentSave) TableName() string {
	return "tournament_saves"
}

type StartTournamentRequest struct {
	Team string `json:"team" binding:"required"`
}

// TournamentView is what the tournament hub shows.
type TournamentView struct {
	Tournament  Tournament      `json:"tournament"`
	NextFixture *TournamentNode `json:"next_fixture,omitempty"`
	Eliminated  bool            `json:"eliminated"`
	Champion    bool            `json:"champion"`
	Finished    bool            `json:"finished"`
}
