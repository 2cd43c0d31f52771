package match

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bab-arcade/packages/core/models"

	"github.com/sirupsen/logrus"
)

type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseFirstHalf       Phase = "first_half"
	PhaseHalftimeBreak   Phase = "halftime_break"
	PhaseSecondHalf      Phase = "second_half"
	PhaseOvertimeBreak1  Phase = "overtime_break_1"
	PhaseOvertime1       Phase = "overtime_1"
	PhaseOvertimeBreak2  Phase = "overtime_break_2"
	PhaseOvertime2       Phase = "overtime_2"
	PhasePenaltyShootout Phase = "penalty_shootout"
	PhaseComplete        Phase = "complete"
)

// Running reports whether the phase is one where the match clock can run.
func (p Phase) Running() bool {
	switch p {
	case PhaseFirstHalf, PhaseSecondHalf, PhaseOvertime1, PhaseOvertime2:
		return true
	}
	return false
}

// Overlay is what covers the pitch on top of the phase.
type Overlay string

const (
	OverlayNone        Overlay = ""
	OverlayCountdown   Overlay = "countdown"
	OverlayPaused      Overlay = "paused"
	OverlayBreak       Overlay = "break"
	OverlayCelebration Overlay = "celebration"
	OverlayResult      Overlay = "result"
)

type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

var (
	ErrAlreadyStarted  = errors.New("match already started")
	ErrInvalidSetup    = errors.New("invalid match setup")
	ErrNotStarted      = errors.New("match not started")
	ErrNotRunning      = errors.New("match clock is not running")
	ErrNotPaused       = errors.New("match is not paused")
	ErrNoBreak         = errors.New("match is not in a break")
	ErrNoShootout      = errors.New("match is not in a penalty shootout")
	ErrInvalidShootout = errors.New("invalid shootout outcome")
	ErrNotComplete     = errors.New("match is not complete")
	ErrCannotForfeit   = errors.New("match cannot be left right now")
)

// Config holds the match timings. Lengths are in game minutes, one per tick.
type Config struct {
	HalfLength     int
	OvertimeLength int
	Tick           time.Duration
	CountdownBeats int
	Beat           time.Duration
	Celebration    time.Duration
}

func DefaultConfig() Config {
	return Config{
		HalfLength:     45,
		OvertimeLength: 15,
		Tick:           time.Second,
		CountdownBeats: 3,
		Beat:           time.Second,
		Celebration:    3 * time.Second,
	}
}

func (c Config) FullLength() int {
	return 2 * c.HalfLength
}

// Setup describes the fixture being played. Team1 and Team2 keep the
// fixture's orientation; Tracked is the code of the side the human controls.
type Setup struct {
	Mode       models.Mode       `json:"mode"`
	Team1      models.Competitor `json:"team1"`
	Team2      models.Competitor `json:"team2"`
	Tracked    string            `json:"tracked"`
	OpponentAI bool              `json:"opponent_ai"`
	Difficulty models.Difficulty `json:"difficulty"`
}

func (s Setup) validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSetup, s.Mode)
	}
	if s.Team1.Same(s.Team2) {
		return fmt.Errorf("%w: %s cannot play itself", ErrInvalidSetup, s.Team1.Code)
	}
	if s.Tracked != s.Team1.Code && s.Tracked != s.Team2.Code {
		return fmt.Errorf("%w: %s is not part of %s vs %s", ErrInvalidSetup, s.Tracked, s.Team1.Code, s.Team2.Code)
	}
	return nil
}

func (s Setup) playerIsTeam1() bool {
	return s.Tracked == s.Team1.Code
}

// PlayerTeam is the competitor on the human's side.
func (s Setup) PlayerTeam() models.Competitor {
	if s.playerIsTeam1() {
		return s.Team1
	}
	return s.Team2
}

func (s Setup) OpponentTeam() models.Competitor {
	if s.playerIsTeam1() {
		return s.Team2
	}
	return s.Team1
}

// GameplayInput is what the gameplay surface needs to render the match.
type GameplayInput struct {
	PlayerTeam   models.Competitor `json:"player_team"`
	OpponentTeam models.Competitor `json:"opponent_team"`
	OpponentAI   bool              `json:"opponent_ai"`
	Difficulty   models.Difficulty `json:"difficulty"`
	Paused       bool              `json:"paused"`
	ResetSignal  int               `json:"reset_signal"`
}

// ShootoutRequest hands the two sides over to the penalty shootout.
type ShootoutRequest struct {
	PlayerSide models.Competitor `json:"player_side"`
	AISide     models.Competitor `json:"ai_side"`
	Difficulty models.Difficulty `json:"difficulty"`
}

type ShootoutWinner string

const (
	ShootoutPlayer ShootoutWinner = "player"
	ShootoutAI     ShootoutWinner = "ai"
)

type ShootoutScores struct {
	Player int `json:"player"`
	AI     int `json:"ai"`
}

// ShootoutOutcome is reported once by the penalty shootout.
type ShootoutOutcome struct {
	Winner ShootoutWinner `json:"winner"`
	Scores ShootoutScores `json:"scores"`
}

func (o ShootoutOutcome) validate() error {
	if o.Scores.Player < 0 || o.Scores.AI < 0 {
		return fmt.Errorf("%w: negative score", ErrInvalidShootout)
	}
	switch o.Winner {
	case ShootoutPlayer:
		if o.Scores.Player <= o.Scores.AI {
			return fmt.Errorf("%w: player won with %d-%d", ErrInvalidShootout, o.Scores.Player, o.Scores.AI)
		}
	case ShootoutAI:
		if o.Scores.AI <= o.Scores.Player {
			return fmt.Errorf("%w: ai won with %d-%d", ErrInvalidShootout, o.Scores.Player, o.Scores.AI)
		}
	default:
		return fmt.Errorf("%w: unknown winner %q", ErrInvalidShootout, o.Winner)
	}
	return nil
}

// State is a read-only view of the machine.
type State struct {
	Setup         Setup               `json:"setup"`
	Phase         Phase               `json:"phase"`
	Overlay       Overlay             `json:"overlay,omitempty"`
	Minute        int                 `json:"minute"`
	Countdown     int                 `json:"countdown"`
	PlayerScore   int                 `json:"player_score"`
	OpponentScore int                 `json:"opponent_score"`
	ResetSignal   int                 `json:"reset_signal"`
	ClockRunning  bool                `json:"clock_running"`
	Result        *models.MatchResult `json:"result,omitempty"`
}

// Final is what Finish hands back once the machine has reset.
type Final struct {
	Setup  Setup              `json:"setup"`
	Result models.MatchResult `json:"result"`
	Winner *models.Competitor `json:"winner,omitempty"`
}

// Machine drives one match: countdowns, halves, breaks, overtime and the
// hand-off to the penalty shootout. All events are serialised by mu; every
// transition cancels the pending timer and bumps gen so a late callback is
// ignored.
type Machine struct {
	mu    sync.Mutex
	clock Clock
	cfg   Config
	log   logrus.FieldLogger

	setup         Setup
	phase         Phase
	overlay       Overlay
	minute        int
	countdown     int
	playerScore   int
	opponentScore int
	penalties     *ShootoutScores
	resets        int

	timer Timer
	gen   uint64
}

func NewMachine(clock Clock, cfg Config, logger logrus.FieldLogger) *Machine {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Machine{
		clock: clock,
		cfg:   cfg,
		log:   logger.WithField("component", "match"),
		phase: PhaseIdle,
	}
}

// Start kicks off the first half behind a countdown.
func (m *Machine) Start(setup Setup) error {
	if err := setup.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseIdle {
		return ErrAlreadyStarted
	}
	m.setup = setup
	m.phase = PhaseFirstHalf
	m.log.WithFields(logrus.Fields{
		"mode":  setup.Mode,
		"team1": setup.Team1.Code,
		"team2": setup.Team2.Code,
	}).Debug("match started")
	m.beginCountdown()
	return nil
}

// Goal credits the scoring side and holds the clock for the celebration.
func (m *Machine) Goal(side Side) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.clockRunning() {
		return ErrNotRunning
	}
	switch side {
	case SidePlayer:
		m.playerScore++
	case SideOpponent:
		m.opponentScore++
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	m.cancel()
	m.overlay = OverlayCelebration
	m.log.WithFields(logrus.Fields{
		"side":   side,
		"minute": m.minute,
		"score":  fmt.Sprintf("%d-%d", m.playerScore, m.opponentScore),
	}).Debug("goal")
	m.schedule(m.cfg.Celebration, m.endCelebration)
	return nil
}

func (m *Machine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.clockRunning() {
		return ErrNotRunning
	}
	m.cancel()
	m.overlay = OverlayPaused
	m.log.WithField("minute", m.minute).Debug("paused")
	return nil
}

// Resume leaves the pause overlay through a fresh countdown.
func (m *Machine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.overlay != OverlayPaused {
		return ErrNotPaused
	}
	m.log.WithField("minute", m.minute).Debug("resumed")
	m.beginCountdown()
	return nil
}

// Continue leaves a break and starts the segment that follows it.
func (m *Machine) Continue() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.overlay != OverlayBreak {
		return ErrNoBreak
	}
	switch m.phase {
	case PhaseHalftimeBreak:
		m.phase = PhaseSecondHalf
	case PhaseOvertimeBreak1:
		m.phase = PhaseOvertime1
	case PhaseOvertimeBreak2:
		m.phase = PhaseOvertime2
	default:
		return ErrNoBreak
	}
	m.log.WithField("phase", m.phase).Debug("segment starting")
	m.beginCountdown()
	return nil
}

// ShootoutRequest returns the side assignment for the penalty shootout.
func (m *Machine) ShootoutRequest() (ShootoutRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePenaltyShootout {
		return ShootoutRequest{}, ErrNoShootout
	}
	return ShootoutRequest{
		PlayerSide: m.setup.PlayerTeam(),
		AISide:     m.setup.OpponentTeam(),
		Difficulty: m.setup.Difficulty,
	}, nil
}

// ShootoutFinished records the shootout and completes the match.
func (m *Machine) ShootoutFinished(outcome ShootoutOutcome) error {
	if err := outcome.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePenaltyShootout {
		return ErrNoShootout
	}
	scores := outcome.Scores
	m.penalties = &scores
	m.log.WithFields(logrus.Fields{
		"winner":    outcome.Winner,
		"penalties": fmt.Sprintf("%d-%d", scores.Player, scores.AI),
	}).Debug("shootout finished")
	m.complete()
	return nil
}

// Finish returns the final result in fixture orientation and resets the
// machine to idle.
func (m *Machine) Finish() (Final, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	final, err := m.final()
	if err != nil {
		return Final{}, err
	}
	m.log.WithField("result", final.Result.String()).Debug("match finished")
	m.reset()
	return final, nil
}

// Final reads the outcome of a complete match without leaving the result
// overlay, so a caller can store it before calling Finish.
func (m *Machine) Final() (Final, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.final()
}

func (m *Machine) final() (Final, error) {
	if m.phase != PhaseComplete {
		return Final{}, ErrNotComplete
	}
	res := m.result()
	final := Final{Setup: m.setup, Result: res}
	switch res.Winner() {
	case models.Team1Wins:
		w := m.setup.Team1
		final.Winner = &w
	case models.Team2Wins:
		w := m.setup.Team2
		final.Winner = &w
	}
	return final, nil
}

// Forfeit discards the match. It is offered from the pause overlay, a break,
// the shootout and the result overlay.
func (m *Machine) Forfeit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseIdle {
		return ErrNotStarted
	}
	switch {
	case m.overlay == OverlayPaused, m.overlay == OverlayBreak, m.overlay == OverlayResult:
	case m.phase == PhasePenaltyShootout:
	default:
		return ErrCannotForfeit
	}
	m.log.WithFields(logrus.Fields{"phase": m.phase, "minute": m.minute}).Debug("match forfeited")
	m.reset()
	return nil
}

func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{
		Setup:         m.setup,
		Phase:         m.phase,
		Overlay:       m.overlay,
		Minute:        m.minute,
		Countdown:     m.countdown,
		PlayerScore:   m.playerScore,
		OpponentScore: m.opponentScore,
		ResetSignal:   m.resets,
		ClockRunning:  m.clockRunning(),
	}
	if m.phase == PhaseComplete {
		res := m.result()
		st.Result = &res
	}
	return st
}

func (m *Machine) GameplayInput() GameplayInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	return GameplayInput{
		PlayerTeam:   m.setup.PlayerTeam(),
		OpponentTeam: m.setup.OpponentTeam(),
		OpponentAI:   m.setup.OpponentAI,
		Difficulty:   m.setup.Difficulty,
		Paused:       !m.clockRunning(),
		ResetSignal:  m.resets,
	}
}

func (m *Machine) clockRunning() bool {
	return m.phase.Running() && m.overlay == OverlayNone
}

// cancel drops the pending timer. Must hold mu.
func (m *Machine) cancel() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
}

// schedule arms a single timer for the current generation. Must hold mu.
func (m *Machine) schedule(d time.Duration, f func()) {
	gen := m.gen
	m.timer = m.clock.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if gen != m.gen {
			return
		}
		m.timer = nil
		f()
	})
}

func (m *Machine) beginCountdown() {
	m.cancel()
	m.resets++
	m.overlay = OverlayCountdown
	m.countdown = m.cfg.CountdownBeats
	m.schedule(m.cfg.Beat, m.beat)
}

func (m *Machine) beat() {
	m.countdown--
	if m.countdown > 0 {
		m.schedule(m.cfg.Beat, m.beat)
		return
	}
	m.countdown = 0
	m.overlay = OverlayNone
	m.gen++
	m.log.WithField("phase", m.phase).Debug("go")
	m.schedule(m.cfg.Tick, m.tick)
}

func (m *Machine) endCelebration() {
	m.overlay = OverlayNone
	m.resets++
	m.gen++
	m.schedule(m.cfg.Tick, m.tick)
}

func (m *Machine) tick() {
	m.minute++
	full := m.cfg.FullLength()
	ot := m.cfg.OvertimeLength
	level := m.playerScore == m.opponentScore

	switch m.phase {
	case PhaseFirstHalf:
		if m.minute >= m.cfg.HalfLength {
			m.minute = m.cfg.HalfLength
			m.enterBreak(PhaseHalftimeBreak)
			return
		}
	case PhaseSecondHalf:
		if m.minute >= full {
			m.minute = full
			if level && (m.setup.Mode == models.ModeTournament || m.setup.Mode == models.ModeQuick) {
				m.enterBreak(PhaseOvertimeBreak1)
			} else {
				m.complete()
			}
			return
		}
	case PhaseOvertime1:
		if m.minute >= full+ot {
			m.minute = full + ot
			m.enterBreak(PhaseOvertimeBreak2)
			return
		}
	case PhaseOvertime2:
		if m.minute >= full+2*ot {
			m.minute = full + 2*ot
			if level {
				m.gen++
				m.phase = PhasePenaltyShootout
				m.overlay = OverlayNone
				m.log.Debug("level after overtime, handing over to the shootout")
			} else {
				m.complete()
			}
			return
		}
	}
	m.schedule(m.cfg.Tick, m.tick)
}

func (m *Machine) enterBreak(phase Phase) {
	m.gen++
	m.phase = phase
	m.overlay = OverlayBreak
	m.log.WithFields(logrus.Fields{"phase": phase, "minute": m.minute}).Debug("break")
}

func (m *Machine) complete() {
	m.cancel()
	m.phase = PhaseComplete
	m.overlay = OverlayResult
	m.log.WithField("minute", m.minute).Debug("match complete")
}

// result maps the player/opponent tallies onto the fixture's team1/team2.
func (m *Machine) result() models.MatchResult {
	p1, p2 := m.playerScore, m.opponentScore
	if !m.setup.playerIsTeam1() {
		p1, p2 = p2, p1
	}
	if m.penalties == nil {
		return models.MatchResult{Team1Score: p1, Team2Score: p2}
	}
	pen1, pen2 := m.penalties.Player, m.penalties.AI
	if !m.setup.playerIsTeam1() {
		pen1, pen2 = pen2, pen1
	}
	return models.NewPenaltyResult(p1, pen1, pen2)
}

func (m *Machine) reset() {
	m.cancel()
	m.setup = Setup{}
	m.phase = PhaseIdle
	m.overlay = OverlayNone
	m.minute = 0
	m.countdown = 0
	m.playerScore = 0
	m.opponentScore = 0
	m.penalties = nil
	m.resets = 0
}
