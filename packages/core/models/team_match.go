package models

// Fixture is one scheduled league meeting. Result is written once.
type Fixture struct {
	Round  int          `json:"round"`
	Team1  Competitor   `json:"team1"`
	Team2  Competitor   `json:"team2"`
	Result *MatchResult `json:"result,omitempty"`
}

func (f Fixture) Involves(code string) bool {
	return f.Team1.Code == code || f.Team2.Code == code
}

// Pairs reports whether the fixture is between a and b, in either order.
func (f Fixture) Pairs(a, b Competitor) bool {
	return (f.Team1.Same(a) && f.Team2.Same(b)) || (f.Team1.Same(b) && f.Team2.Same(a))
}

func (f Fixture) Played() bool {
	return f.Result != nil
}

func (f Fixture) Clone() Fixture {
	cp := f
	cp.Result = cloneResult(f.Result)
	return cp
}
