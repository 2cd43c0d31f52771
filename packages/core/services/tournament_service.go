package services

import (
	"fmt"

	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type TournamentService struct {
	store   CompetitionStore
	catalog Catalog
	sim     *engine.Simulator
	locks   *KeyedMutex
	log     *logrus.Entry
}

func NewTournamentService(store CompetitionStore, catalog Catalog, sim *engine.Simulator, locks *KeyedMutex, logger logrus.FieldLogger) *TournamentService {
	return &TournamentService{
		store:   store,
		catalog: catalog,
		sim:     sim,
		locks:   locks,
		log:     logger.WithField("component", "tournament"),
	}
}

// Start draws a new bracket for the profile, replacing any previous one.
func (s *TournamentService) Start(profileID uint, teamCode string) (*models.TournamentView, error) {
	tracked, err := s.catalog.Get(teamCode)
	if err != nil {
		return nil, err
	}
	competitors, err := s.catalog.List()
	if err != nil {
		return nil, err
	}

	tournament, err := engine.GenerateBracket(competitors, *tracked, s.sim)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(profileID)
	defer unlock()

	save := &models.TournamentSave{
		ProfileID: profileID,
		State:     datatypes.NewJSONType(tournament),
	}
	if err := s.store.SaveTournament(save); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"profile": profileID, "team": tracked.Code}).Info("tournament started")
	return tournamentView(tournament), nil
}

func (s *TournamentService) Get(profileID uint) (*models.TournamentView, error) {
	save, err := s.store.LoadTournament(profileID)
	if err != nil {
		return nil, err
	}
	return tournamentView(save.State.Data()), nil
}

// NextFixture returns ErrNoFixture once the tracked competitor is out or the
// tournament is over.
func (s *TournamentService) NextFixture(profileID uint) (*models.TournamentView, *models.TournamentNode, error) {
	view, err := s.Get(profileID)
	if err != nil {
		return nil, nil, err
	}
	if view.NextFixture == nil {
		return view, nil, ErrNoFixture
	}
	return view, view.NextFixture, nil
}

// RecordResult resolves the tracked competitor's node, simulates the rest of
// the round and advances the bracket.
func (s *TournamentService) RecordResult(profileID uint, team1, team2 models.Competitor, result models.MatchResult) (*models.TournamentView, error) {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	save, err := s.store.LoadTournament(profileID)
	if err != nil {
		return nil, err
	}
	current := save.State.Data()

	next, err := engine.ResolveAndAdvance(current, team1, team2, result, s.sim)
	if err != nil {
		return nil, fmt.Errorf("record tournament result: %w", err)
	}

	save.State = datatypes.NewJSONType(next)
	if err := s.store.SaveTournament(save); err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"profile": profileID,
		"round":   next.CurrentRound,
		"version": next.Version,
		"fixture": fmt.Sprintf("%s %s %s", team1.Code, result.String(), team2.Code),
	})
	if next.Winner != nil {
		entry = entry.WithField("champion", next.Winner.Code)
	}
	entry.Info("tournament advanced")
	return tournamentView(next), nil
}

// SimulateRemaining plays out the bracket once the tracked competitor has
// been knocked out.
func (s *TournamentService) SimulateRemaining(profileID uint) (*models.TournamentView, error) {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	save, err := s.store.LoadTournament(profileID)
	if err != nil {
		return nil, err
	}

	next, err := engine.AdvanceWithoutTracked(save.State.Data(), s.sim)
	if err != nil {
		return nil, fmt.Errorf("simulate tournament: %w", err)
	}

	save.State = datatypes.NewJSONType(next)
	if err := s.store.SaveTournament(save); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"profile": profileID, "champion": next.Winner.Code}).Info("tournament simulated to the end")
	return tournamentView(next), nil
}

func (s *TournamentService) Abandon(profileID uint) error {
	unlock := s.locks.Lock(profileID)
	defer unlock()

	if err := s.store.DeleteTournament(profileID); err != nil {
		return err
	}
	s.log.WithField("profile", profileID).Info("tournament abandoned")
	return nil
}

func tournamentView(t models.Tournament) *models.TournamentView {
	return &models.TournamentView{
		Tournament:  t,
		NextFixture: t.NextFixture(),
		Eliminated:  t.Eliminated(),
		Champion:    t.Winner != nil && t.Winner.Code == t.PlayerTeam.Code,
		Finished:    t.Finished(),
	}
}
