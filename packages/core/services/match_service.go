package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionView is what a client polls while a match is live.
type SessionView struct {
	ID       uuid.UUID              `json:"id"`
	State    match.State            `json:"state"`
	Gameplay match.GameplayInput    `json:"gameplay"`
	Shootout *match.ShootoutRequest `json:"shootout,omitempty"`
}

// MatchOutcome is returned when a finished match has been folded into its
// competition.
type MatchOutcome struct {
	Final      match.Final            `json:"final"`
	Record     *models.MatchRecord    `json:"record,omitempty"`
	League     *models.LeagueView     `json:"league,omitempty"`
	Tournament *models.TournamentView `json:"tournament,omitempty"`
}

type session struct {
	id           uuid.UUID
	profileID    uint
	machine      *match.Machine
	lastActivity time.Time
	finishing    sync.Mutex
}

// MatchService hosts live matches, at most one per profile.
type MatchService struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*session
	byProfile map[uint]uuid.UUID

	catalog     Catalog
	leagues     *LeagueService
	tournaments *TournamentService
	history     *HistoryService
	clock       match.Clock
	cfg         match.Config
	now         func() time.Time
	logger      logrus.FieldLogger
	log         *logrus.Entry
}

func NewMatchService(catalog Catalog, leagues *LeagueService, tournaments *TournamentService, history *HistoryService, clock match.Clock, cfg match.Config, logger logrus.FieldLogger) *MatchService {
	return &MatchService{
		sessions:    make(map[uuid.UUID]*session),
		byProfile:   make(map[uint]uuid.UUID),
		catalog:     catalog,
		leagues:     leagues,
		tournaments: tournaments,
		history:     history,
		clock:       clock,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger,
		log:         logger.WithField("component", "matches"),
	}
}

// Start opens a match. League and tournament matches always play the
// competition's pending fixture of the tracked competitor.
func (s *MatchService) Start(profileID uint, req models.StartMatchRequest) (*SessionView, error) {
	setup, err := s.buildSetup(profileID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.byProfile[profileID]; busy {
		return nil, ErrSessionActive
	}

	machine := match.NewMachine(s.clock, s.cfg, s.logger)
	if err := machine.Start(setup); err != nil {
		return nil, err
	}

	sess := &session{
		id:           uuid.New(),
		profileID:    profileID,
		machine:      machine,
		lastActivity: s.now(),
	}
	s.sessions[sess.id] = sess
	s.byProfile[profileID] = sess.id

	s.log.WithFields(logrus.Fields{
		"profile": profileID,
		"session": sess.id,
		"mode":    setup.Mode,
		"fixture": fmt.Sprintf("%s vs %s", setup.Team1.Code, setup.Team2.Code),
	}).Info("match started")
	return sessionView(sess), nil
}

func (s *MatchService) buildSetup(profileID uint, req models.StartMatchRequest) (match.Setup, error) {
	if !req.Difficulty.Valid() {
		return match.Setup{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidMatch, req.Difficulty)
	}
	setup := match.Setup{
		Mode:       req.Mode,
		Difficulty: req.Difficulty,
		OpponentAI: true,
	}
	if req.OpponentAI != nil {
		setup.OpponentAI = *req.OpponentAI
	}

	switch req.Mode {
	case models.ModeQuick:
		if req.Team == "" || req.Opponent == "" {
			return match.Setup{}, fmt.Errorf("%w: a quick match needs a team and an opponent", ErrInvalidMatch)
		}
		if req.Team == req.Opponent {
			return match.Setup{}, fmt.Errorf("%w: %s cannot play itself", ErrInvalidMatch, req.Team)
		}
		team, err := s.catalog.Get(req.Team)
		if err != nil {
			return match.Setup{}, err
		}
		opponent, err := s.catalog.Get(req.Opponent)
		if err != nil {
			return match.Setup{}, err
		}
		setup.Team1, setup.Team2, setup.Tracked = *team, *opponent, team.Code

	case models.ModeLeague:
		view, fixture, err := s.leagues.NextFixture(profileID)
		if err != nil {
			return match.Setup{}, err
		}
		setup.Team1, setup.Team2, setup.Tracked = fixture.Team1, fixture.Team2, view.Tracked.Code

	case models.ModeTournament:
		view, node, err := s.tournaments.NextFixture(profileID)
		if err != nil {
			return match.Setup{}, err
		}
		setup.Team1, setup.Team2, setup.Tracked = *node.Team1, *node.Team2, view.Tournament.PlayerTeam.Code

	default:
		return match.Setup{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidMatch, req.Mode)
	}
	return setup, nil
}

func (s *MatchService) Get(profileID uint, id uuid.UUID) (*SessionView, error) {
	sess, err := s.lookup(profileID, id, false)
	if err != nil {
		return nil, err
	}
	return sessionView(sess), nil
}

// Current returns the live match of the profile, if any.
func (s *MatchService) Current(profileID uint) (*SessionView, error) {
	s.mu.Lock()
	id, ok := s.byProfile[profileID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Get(profileID, id)
}

func (s *MatchService) Goal(profileID uint, id uuid.UUID, side match.Side) (*SessionView, error) {
	return s.relay(profileID, id, func(m *match.Machine) error { return m.Goal(side) })
}

func (s *MatchService) Pause(profileID uint, id uuid.UUID) (*SessionView, error) {
	return s.relay(profileID, id, (*match.Machine).Pause)
}

func (s *MatchService) Resume(profileID uint, id uuid.UUID) (*SessionView, error) {
	return s.relay(profileID, id, (*match.Machine).Resume)
}

func (s *MatchService) Continue(profileID uint, id uuid.UUID) (*SessionView, error) {
	return s.relay(profileID, id, (*match.Machine).Continue)
}

func (s *MatchService) Shootout(profileID uint, id uuid.UUID, outcome match.ShootoutOutcome) (*SessionView, error) {
	return s.relay(profileID, id, func(m *match.Machine) error { return m.ShootoutFinished(outcome) })
}

// Finish closes a completed match: the result goes into the league or the
// tournament it belongs to and into the profile's history. The session stays
// open until the competition has stored the result, so a failed write can be
// retried.
func (s *MatchService) Finish(profileID uint, id uuid.UUID) (*MatchOutcome, error) {
	sess, err := s.lookup(profileID, id, true)
	if err != nil {
		return nil, err
	}

	sess.finishing.Lock()
	defer sess.finishing.Unlock()

	final, err := sess.machine.Final()
	if err != nil {
		return nil, err
	}

	out := &MatchOutcome{Final: final}
	setup := final.Setup
	switch setup.Mode {
	case models.ModeLeague:
		out.League, err = s.leagues.RecordResult(profileID, setup.Team1, setup.Team2, final.Result)
	case models.ModeTournament:
		out.Tournament, err = s.tournaments.RecordResult(profileID, setup.Team1, setup.Team2, final.Result)
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"profile": profileID,
			"session": id,
		}).Error("could not fold match into its competition")
		return nil, err
	}

	if _, err := sess.machine.Finish(); err != nil {
		return nil, err
	}
	s.drop(sess)

	out.Record, err = s.history.Record(profileID, setup.Mode, setup.Difficulty, setup.Tracked, setup.Team1, setup.Team2, final.Result)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"profile": profileID,
			"session": id,
		}).Warn("match finished without a history record")
	}

	s.log.WithFields(logrus.Fields{
		"profile": profileID,
		"session": id,
		"result":  final.Result.String(),
	}).Info("match finished")
	return out, nil
}

// Forfeit discards the match. The competition it came from is left as it was,
// so the same fixture is offered again.
func (s *MatchService) Forfeit(profileID uint, id uuid.UUID) error {
	sess, err := s.lookup(profileID, id, true)
	if err != nil {
		return err
	}
	if err := sess.machine.Forfeit(); err != nil {
		return err
	}
	s.drop(sess)
	s.log.WithFields(logrus.Fields{"profile": profileID, "session": id}).Info("match forfeited")
	return nil
}

// ReapIdle forfeits sessions nobody has touched for longer than timeout. A
// running clock is paused first; sessions caught mid countdown or celebration
// are left for the next pass.
func (s *MatchService) ReapIdle(timeout time.Duration) int {
	cutoff := s.now().Add(-timeout)

	s.mu.Lock()
	var idle []*session
	for _, sess := range s.sessions {
		if sess.lastActivity.Before(cutoff) {
			idle = append(idle, sess)
		}
	}
	s.mu.Unlock()

	reaped := 0
	for _, sess := range idle {
		if err := sess.machine.Pause(); err != nil && !errors.Is(err, match.ErrNotRunning) {
			s.log.WithError(err).WithField("session", sess.id).Warn("could not pause idle session")
		}
		if err := sess.machine.Forfeit(); err != nil {
			s.log.WithError(err).WithField("session", sess.id).Debug("idle session not reapable yet")
			continue
		}
		s.drop(sess)
		reaped++
	}
	if reaped > 0 {
		s.log.WithField("count", reaped).Info("reaped idle match sessions")
	}
	return reaped
}

// ActiveCount is the number of live sessions.
func (s *MatchService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MatchService) relay(profileID uint, id uuid.UUID, op func(*match.Machine) error) (*SessionView, error) {
	sess, err := s.lookup(profileID, id, true)
	if err != nil {
		return nil, err
	}
	if err := op(sess.machine); err != nil {
		return nil, err
	}
	return sessionView(sess), nil
}

func (s *MatchService) lookup(profileID uint, id uuid.UUID, touch bool) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.profileID != profileID {
		return nil, ErrSessionNotFound
	}
	if touch {
		sess.lastActivity = s.now()
	}
	return sess, nil
}

func (s *MatchService) drop(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sess.id)
	if s.byProfile[sess.profileID] == sess.id {
		delete(s.byProfile, sess.profileID)
	}
}

func sessionView(sess *session) *SessionView {
	view := &SessionView{
		ID:       sess.id,
		State:    sess.machine.Snapshot(),
		Gameplay: sess.machine.GameplayInput(),
	}
	if req, err := sess.machine.ShootoutRequest(); err == nil {
		view.Shootout = &req
	}
	return view
}
