package services

import (
	"io"
	"math/rand"
	"time"

	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/models"

	"github.com/sirupsen/logrus"
)

var testCompetitors = []models.Competitor{
	{Code: "GS", Name: "Galatasaray"},
	{Code: "FB", Name: "Fenerbahçe"},
	{Code: "BJK", Name: "Beşiktaş"},
	{Code: "TS", Name: "Trabzonspor"},
	{Code: "BSK", Name: "Başakşehir"},
	{Code: "KSP", Name: "Kasımpaşa"},
	{Code: "ANT", Name: "Antalyaspor"},
	{Code: "KON", Name: "Konyaspor"},
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testEnv struct {
	store       CompetitionStore
	history     HistoryStore
	leagues     *LeagueService
	tournaments *TournamentService
	records     *HistoryService
	matches     *MatchService
	clock       *match.ManualClock
}

func newTestEnv(competitors []models.Competitor) *testEnv {
	return newTestEnvWithStores(competitors, NewMemoryCompetitionStore(), NewMemoryHistoryStore())
}

func newTestEnvWithStores(competitors []models.Competitor, store CompetitionStore, history HistoryStore) *testEnv {
	logger := quietLogger()
	catalog := NewMemoryCatalog(competitors)
	sim := engine.NewSimulator(rand.NewSource(42))
	locks := NewKeyedMutex()

	env := &testEnv{
		store:   store,
		history: history,
		clock:   match.NewManualClock(),
	}
	env.leagues = NewLeagueService(env.store, catalog, sim, locks, logger)
	env.tournaments = NewTournamentService(env.store, catalog, sim, locks, logger)
	env.records = NewHistoryService(env.history, logger)
	env.matches = NewMatchService(catalog, env.leagues, env.tournaments, env.records, env.clock, shortMatch(), logger)
	return env
}

// shortMatch plays two-minute halves and one-minute overtime periods.
func shortMatch() match.Config {
	return match.Config{
		HalfLength:     2,
		OvertimeLength: 1,
		Tick:           time.Second,
		CountdownBeats: 3,
		Beat:           time.Second,
		Celebration:    3 * time.Second,
	}
}
