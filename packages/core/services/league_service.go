package services

import (
	"fmt"

	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// LeagueService runs the round-robin league of each profile. Every write
// happens under the profile's lock and ends with a save.
type LeagueService struct {
	store   CompetitionStore
	catalog Catalog
	sim     *engine.Simulator
	locks   *KeyedMutex
	log     *logrus.Entry
}

func NewLeagueService(store CompetitionStore, catalog Catalog, sim *engine.Simulator, locks *KeyedMutex, logger logrus.FieldLogger) *LeagueService {
	return &LeagueService{
		store:   store,
		catalog: catalog,
		sim:     sim,
		locks:   locks,
		log:     logger.WithField("component", "league"),
	}
}

// Start replaces any league of the profile with a fresh one over the whole
// catalog.
func (s *LeagueService) Start(profileID uint, teamCode string) (*models.LeagueView, error) {
	tracked, err := s.catalog.Get(teamCode)
	if err != nil {
		return nil, err
	}
	competitors, err := s.catalog.List()
	if err != nil {
		return nil, err
	}

	league, err := engine.NewLeague(competitors)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	save := &models.LeagueSave{
		ProfileID:   profileID,
		TrackedCode: tracked.Code,
		State:       datatypes.NewJSONType(league),
	}
	if err := s.store.SaveLeague(save); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"profile": profileID,
		"team":    tracked.Code,
		"rounds":  league.TotalRounds(),
	}).Info("league started")
	return leagueView(save), nil
}

func (s *LeagueService) Get(profileID uint) (*models.LeagueView, error) {
	save, err := s.store.LoadLeague(profileID)
	if err != nil {
		return nil, err
	}
	return leagueView(save), nil
}

// NextFixture is the tracked competitor's fixture of the coming week.
// ErrNoFixture covers both a bye week and a finished league.
func (s *LeagueService) NextFixture(profileID uint) (*models.LeagueView, *models.Fixture, error) {
	view, err := s.Get(profileID)
	if err != nil {
		return nil, nil, err
	}
	if view.NextFixture == nil {
		return view, nil, ErrNoFixture
	}
	return view, view.NextFixture, nil
}

// RecordResult folds a played fixture into the league and closes the week.
func (s *LeagueService) RecordResult(profileID uint, team1, team2 models.Competitor, result models.MatchResult) (*models.LeagueView, error) {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	save, err := s.store.LoadLeague(profileID)
	if err != nil {
		return nil, err
	}
	league := save.State.Data()

	next, err := engine.AdvanceLeague(league, competitorsOf(league), save.TrackedCode, team1, team2, result, s.sim)
	if err != nil {
		return nil, fmt.Errorf("record league result: %w", err)
	}

	save.State = datatypes.NewJSONType(next)
	if err := s.store.SaveLeague(save); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"profile": profileID,
		"week":    next.CurrentWeek,
		"fixture": fmt.Sprintf("%s %s %s", team1.Code, result.String(), team2.Code),
	}).Info("league week closed")
	return leagueView(save), nil
}

// SimulateByeWeek closes a week in which the tracked competitor does not play.
func (s *LeagueService) SimulateByeWeek(profileID uint) (*models.LeagueView, error) {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	save, err := s.store.LoadLeague(profileID)
	if err != nil {
		return nil, err
	}
	league := save.State.Data()

	next, err := engine.SimulateWeek(league, competitorsOf(league), save.TrackedCode, s.sim)
	if err != nil {
		return nil, fmt.Errorf("simulate bye week: %w", err)
	}

	save.State = datatypes.NewJSONType(next)
	if err := s.store.SaveLeague(save); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"profile": profileID, "week": next.CurrentWeek}).Info("bye week simulated")
	return leagueView(save), nil
}

func (s *LeagueService) Abandon(profileID uint) error {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	if err := s.store.DeleteLeague(profileID); err != nil {
		return err
	}
	s.log.WithField("profile", profileID).Info("league abandoned")
	return nil
}

// competitorsOf recovers the league's entrants from its table, so a stored
// league keeps working when the catalog changes.
func competitorsOf(l models.League) []models.Competitor {
	out := make([]models.Competitor, len(l.Table))
	for i, row := range l.Table {
		out[i] = row.Team
	}
	return out
}

func leagueView(save *models.LeagueSave) *models.LeagueView {
	league := save.State.Data()
	view := &models.LeagueView{
		League:      league,
		NextFixture: league.NextFixture(save.TrackedCode),
		Finished:    league.Finished(),
	}
	for _, row := range league.Table {
		if row.Team.Code == save.TrackedCode {
			view.Tracked = row.Team
			break
		}
	}
	view.ByeWeek = !view.Finished && view.NextFixture == nil
	return view
}
