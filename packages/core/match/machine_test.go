package match

import (
	"io"
	"testing"
	"time"

	"bab-arcade/packages/core/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	home = models.Competitor{Code: "GS", Name: "Galatasaray"}
	away = models.Competitor{Code: "FB", Name: "Fenerbahçe"}
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Two-minute halves and one-minute overtime periods keep the tests short.
func testConfig() Config {
	return Config{
		HalfLength:     2,
		OvertimeLength: 1,
		Tick:           time.Second,
		CountdownBeats: 3,
		Beat:           time.Second,
		Celebration:    3 * time.Second,
	}
}

func newTestMachine() (*Machine, *ManualClock) {
	clock := NewManualClock()
	return NewMachine(clock, testConfig(), quietLogger()), clock
}

func setup(mode models.Mode, tracked models.Competitor) Setup {
	return Setup{
		Mode:       mode,
		Team1:      home,
		Team2:      away,
		Tracked:    tracked.Code,
		OpponentAI: true,
		Difficulty: models.DifficultyNormal,
	}
}

func countdown(clock *ManualClock) {
	clock.Advance(3 * time.Second)
}

func startRunning(t *testing.T, m *Machine, clock *ManualClock, s Setup) {
	t.Helper()
	require.NoError(t, m.Start(s))
	countdown(clock)
	require.True(t, m.Snapshot().ClockRunning)
}

// toSecondHalf plays a goalless first half and leaves the clock running in
// the second half.
func toSecondHalf(t *testing.T, m *Machine, clock *ManualClock, s Setup) {
	t.Helper()
	startRunning(t, m, clock, s)
	clock.Advance(2 * time.Second)
	require.Equal(t, PhaseHalftimeBreak, m.Snapshot().Phase)
	require.NoError(t, m.Continue())
	countdown(clock)
	require.Equal(t, PhaseSecondHalf, m.Snapshot().Phase)
}

func TestCountdownPrecedesFirstHalf(t *testing.T) {
	m, clock := newTestMachine()
	require.NoError(t, m.Start(setup(models.ModeQuick, home)))

	st := m.Snapshot()
	assert.Equal(t, PhaseFirstHalf, st.Phase)
	assert.Equal(t, OverlayCountdown, st.Overlay)
	assert.Equal(t, 3, st.Countdown)
	assert.Equal(t, 1, st.ResetSignal)
	assert.False(t, st.ClockRunning)
	assert.True(t, m.GameplayInput().Paused)

	clock.Advance(time.Second)
	assert.Equal(t, 2, m.Snapshot().Countdown)
	clock.Advance(time.Second)
	assert.Equal(t, 1, m.Snapshot().Countdown)
	clock.Advance(time.Second)

	st = m.Snapshot()
	assert.Equal(t, OverlayNone, st.Overlay)
	assert.Equal(t, 0, st.Minute)
	assert.True(t, st.ClockRunning)
	assert.False(t, m.GameplayInput().Paused)

	clock.Advance(time.Second)
	assert.Equal(t, 1, m.Snapshot().Minute)
}

func TestMatchToShootout(t *testing.T) {
	for _, mode := range []models.Mode{models.ModeQuick, models.ModeTournament} {
		t.Run(string(mode), func(t *testing.T) {
			m, clock := newTestMachine()
			// the human plays the fixture's team2
			toSecondHalf(t, m, clock, setup(mode, away))

			require.NoError(t, m.Goal(SidePlayer))
			clock.Advance(3 * time.Second)
			require.NoError(t, m.Goal(SideOpponent))
			clock.Advance(3 * time.Second)
			clock.Advance(2 * time.Second)

			st := m.Snapshot()
			require.Equal(t, PhaseOvertimeBreak1, st.Phase)
			assert.Equal(t, OverlayBreak, st.Overlay)
			assert.Equal(t, 4, st.Minute)

			require.NoError(t, m.Continue())
			countdown(clock)
			assert.Equal(t, PhaseOvertime1, m.Snapshot().Phase)
			clock.Advance(time.Second)
			require.Equal(t, PhaseOvertimeBreak2, m.Snapshot().Phase)

			require.NoError(t, m.Continue())
			countdown(clock)
			clock.Advance(time.Second)

			st = m.Snapshot()
			require.Equal(t, PhasePenaltyShootout, st.Phase)
			assert.Equal(t, 6, st.Minute)
			assert.Equal(t, 0, clock.Pending())

			req, err := m.ShootoutRequest()
			require.NoError(t, err)
			assert.Equal(t, away, req.PlayerSide)
			assert.Equal(t, home, req.AISide)
			assert.Equal(t, models.DifficultyNormal, req.Difficulty)

			require.NoError(t, m.ShootoutFinished(ShootoutOutcome{
				Winner: ShootoutPlayer,
				Scores: ShootoutScores{Player: 4, AI: 3},
			}))
			st = m.Snapshot()
			assert.Equal(t, PhaseComplete, st.Phase)
			assert.Equal(t, OverlayResult, st.Overlay)

			final, err := m.Finish()
			require.NoError(t, err)
			assert.Equal(t, 1, final.Result.Team1Score)
			assert.Equal(t, 1, final.Result.Team2Score)
			require.True(t, final.Result.HasPenalties())
			assert.Equal(t, 3, *final.Result.Team1Penalties)
			assert.Equal(t, 4, *final.Result.Team2Penalties)
			assert.Equal(t, models.Team2Wins, final.Result.Winner())
			require.NotNil(t, final.Winner)
			assert.Equal(t, away, *final.Winner)

			st = m.Snapshot()
			assert.Equal(t, PhaseIdle, st.Phase)
			assert.Equal(t, 0, st.PlayerScore+st.OpponentScore+st.Minute+st.ResetSignal)
			assert.Nil(t, st.Result)
		})
	}
}

func TestLeagueDrawSkipsOvertime(t *testing.T) {
	m, clock := newTestMachine()
	toSecondHalf(t, m, clock, setup(models.ModeLeague, home))
	clock.Advance(2 * time.Second)

	st := m.Snapshot()
	require.Equal(t, PhaseComplete, st.Phase)
	require.NotNil(t, st.Result)
	assert.Equal(t, models.Draw, st.Result.Winner())

	final, err := m.Finish()
	require.NoError(t, err)
	assert.Nil(t, final.Winner)
	assert.False(t, final.Result.HasPenalties())
}

func TestDecidedInRegulation(t *testing.T) {
	m, clock := newTestMachine()
	toSecondHalf(t, m, clock, setup(models.ModeQuick, home))
	require.NoError(t, m.Goal(SideOpponent))
	clock.Advance(3 * time.Second)
	clock.Advance(2 * time.Second)

	final, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, models.MatchResult{Team1Score: 0, Team2Score: 1}, final.Result)
	assert.Equal(t, away, *final.Winner)
}

func TestDecidedInOvertime(t *testing.T) {
	m, clock := newTestMachine()
	toSecondHalf(t, m, clock, setup(models.ModeTournament, home))
	clock.Advance(2 * time.Second)
	require.NoError(t, m.Continue())
	countdown(clock)
	require.NoError(t, m.Goal(SidePlayer))
	clock.Advance(3 * time.Second)
	clock.Advance(time.Second)
	require.Equal(t, PhaseOvertimeBreak2, m.Snapshot().Phase)
	require.NoError(t, m.Continue())
	countdown(clock)
	clock.Advance(time.Second)

	st := m.Snapshot()
	assert.Equal(t, PhaseComplete, st.Phase)
	_, err := m.ShootoutRequest()
	assert.ErrorIs(t, err, ErrNoShootout)

	final, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, home, *final.Winner)
}

func TestGoalCelebration(t *testing.T) {
	m, clock := newTestMachine()
	startRunning(t, m, clock, setup(models.ModeQuick, home))
	resets := m.Snapshot().ResetSignal

	require.NoError(t, m.Goal(SidePlayer))
	st := m.Snapshot()
	assert.Equal(t, OverlayCelebration, st.Overlay)
	assert.Equal(t, 1, st.PlayerScore)
	assert.False(t, st.ClockRunning)

	assert.ErrorIs(t, m.Goal(SideOpponent), ErrNotRunning)
	assert.ErrorIs(t, m.Pause(), ErrNotRunning)

	clock.Advance(2 * time.Second)
	assert.Equal(t, OverlayCelebration, m.Snapshot().Overlay)
	assert.Equal(t, 0, m.Snapshot().Minute)

	clock.Advance(time.Second)
	st = m.Snapshot()
	assert.Equal(t, OverlayNone, st.Overlay)
	assert.Equal(t, resets+1, st.ResetSignal)
	assert.True(t, st.ClockRunning)

	clock.Advance(time.Second)
	assert.Equal(t, 1, m.Snapshot().Minute)
	assert.Error(t, m.Goal(Side("referee")))
}

func TestPauseAndResume(t *testing.T) {
	m, clock := newTestMachine()
	require.NoError(t, m.Start(setup(models.ModeQuick, home)))
	assert.ErrorIs(t, m.Pause(), ErrNotRunning)

	countdown(clock)
	clock.Advance(time.Second)
	require.NoError(t, m.Pause())

	st := m.Snapshot()
	assert.Equal(t, OverlayPaused, st.Overlay)
	assert.True(t, m.GameplayInput().Paused)
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, m.Snapshot().Minute)
	assert.ErrorIs(t, m.Pause(), ErrNotRunning)
	assert.ErrorIs(t, m.Goal(SidePlayer), ErrNotRunning)

	require.NoError(t, m.Resume())
	st = m.Snapshot()
	assert.Equal(t, OverlayCountdown, st.Overlay)
	assert.Equal(t, 2, st.ResetSignal)
	assert.ErrorIs(t, m.Resume(), ErrNotPaused)

	countdown(clock)
	assert.True(t, m.Snapshot().ClockRunning)
	clock.Advance(time.Second)
	st = m.Snapshot()
	assert.Equal(t, PhaseHalftimeBreak, st.Phase)
	assert.Equal(t, 2, st.Minute)
}

func TestBreaksWaitForContinue(t *testing.T) {
	m, clock := newTestMachine()
	assert.ErrorIs(t, m.Continue(), ErrNoBreak)

	startRunning(t, m, clock, setup(models.ModeQuick, home))
	assert.ErrorIs(t, m.Continue(), ErrNoBreak)
	clock.Advance(2 * time.Second)

	clock.Advance(time.Hour)
	st := m.Snapshot()
	assert.Equal(t, PhaseHalftimeBreak, st.Phase)
	assert.Equal(t, 2, st.Minute)
	assert.ErrorIs(t, m.Pause(), ErrNotRunning)
}

// leakyClock never cancels anything, so every callback can be fired after
// the state it was armed for has gone.
type leakyClock struct {
	callbacks []func()
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c *leakyClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.callbacks = append(c.callbacks, f)
	return leakyTimer{}
}

func TestStaleTimersAreIgnored(t *testing.T) {
	clock := &leakyClock{}
	m := NewMachine(clock, testConfig(), quietLogger())
	require.NoError(t, m.Start(setup(models.ModeQuick, home)))
	require.Len(t, clock.callbacks, 1)

	// walk the countdown to GO; the tick armed at GO stays in the queue
	for i := 0; i < 3; i++ {
		clock.callbacks[len(clock.callbacks)-1]()
	}
	require.True(t, m.Snapshot().ClockRunning)
	tick := clock.callbacks[len(clock.callbacks)-1]

	require.NoError(t, m.Pause())
	tick()
	tick()
	assert.Equal(t, 0, m.Snapshot().Minute)

	require.NoError(t, m.Resume())
	beat := clock.callbacks[len(clock.callbacks)-1]
	for i := 0; i < 3; i++ {
		clock.callbacks[len(clock.callbacks)-1]()
	}
	require.True(t, m.Snapshot().ClockRunning)
	latest := clock.callbacks[len(clock.callbacks)-1]

	require.NoError(t, m.Pause())
	require.NoError(t, m.Forfeit())
	beat()
	tick()
	latest()

	st := m.Snapshot()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, 0, st.Minute)
	assert.Equal(t, 0, st.Countdown)
}

func TestForfeit(t *testing.T) {
	m, clock := newTestMachine()
	assert.ErrorIs(t, m.Forfeit(), ErrNotStarted)

	startRunning(t, m, clock, setup(models.ModeTournament, home))
	require.NoError(t, m.Goal(SidePlayer))
	assert.ErrorIs(t, m.Forfeit(), ErrCannotForfeit)
	clock.Advance(3 * time.Second)
	assert.ErrorIs(t, m.Forfeit(), ErrCannotForfeit)

	require.NoError(t, m.Pause())
	require.NoError(t, m.Forfeit())
	assert.Equal(t, 0, clock.Pending())

	st := m.Snapshot()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Equal(t, 0, st.PlayerScore)

	// the machine can host a new match straight away
	startRunning(t, m, clock, setup(models.ModeQuick, away))
	assert.Equal(t, 0, m.Snapshot().PlayerScore)
}

func TestForfeitFromResult(t *testing.T) {
	m, clock := newTestMachine()
	toSecondHalf(t, m, clock, setup(models.ModeLeague, home))
	clock.Advance(2 * time.Second)
	require.Equal(t, OverlayResult, m.Snapshot().Overlay)

	require.NoError(t, m.Forfeit())
	_, err := m.Finish()
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestShootoutValidation(t *testing.T) {
	m, clock := newTestMachine()
	good := ShootoutOutcome{Winner: ShootoutAI, Scores: ShootoutScores{Player: 2, AI: 3}}
	assert.ErrorIs(t, m.ShootoutFinished(good), ErrNoShootout)

	toSecondHalf(t, m, clock, setup(models.ModeQuick, home))
	clock.Advance(2 * time.Second)
	for i := 0; i < 2; i++ {
		require.NoError(t, m.Continue())
		countdown(clock)
		clock.Advance(time.Second)
	}
	require.Equal(t, PhasePenaltyShootout, m.Snapshot().Phase)

	bad := []ShootoutOutcome{
		{Winner: ShootoutPlayer, Scores: ShootoutScores{Player: 2, AI: 3}},
		{Winner: ShootoutAI, Scores: ShootoutScores{Player: 3, AI: 3}},
		{Winner: "keeper", Scores: ShootoutScores{Player: 1, AI: 0}},
		{Winner: ShootoutPlayer, Scores: ShootoutScores{Player: 1, AI: -1}},
	}
	for _, o := range bad {
		assert.ErrorIs(t, m.ShootoutFinished(o), ErrInvalidShootout)
	}
	assert.Equal(t, PhasePenaltyShootout, m.Snapshot().Phase)

	require.NoError(t, m.ShootoutFinished(good))
	final, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, 2, *final.Result.Team1Penalties)
	assert.Equal(t, 3, *final.Result.Team2Penalties)
	assert.Equal(t, away, *final.Winner)
}

func TestStartValidation(t *testing.T) {
	m, _ := newTestMachine()

	s := setup(models.ModeQuick, home)
	s.Tracked = "XX"
	assert.ErrorIs(t, m.Start(s), ErrInvalidSetup)

	s = setup(models.ModeQuick, home)
	s.Team2 = home
	assert.ErrorIs(t, m.Start(s), ErrInvalidSetup)

	s = setup("friendly", home)
	assert.ErrorIs(t, m.Start(s), ErrInvalidSetup)

	require.NoError(t, m.Start(setup(models.ModeQuick, home)))
	assert.ErrorIs(t, m.Start(setup(models.ModeQuick, home)), ErrAlreadyStarted)
}

func TestDefaultTimings(t *testing.T) {
	clock := NewManualClock()
	m := NewMachine(clock, DefaultConfig(), quietLogger())
	require.NoError(t, m.Start(setup(models.ModeLeague, home)))

	clock.Advance(3*time.Second + 44*time.Second)
	assert.Equal(t, PhaseFirstHalf, m.Snapshot().Phase)
	clock.Advance(time.Second)
	st := m.Snapshot()
	assert.Equal(t, PhaseHalftimeBreak, st.Phase)
	assert.Equal(t, 45, st.Minute)

	require.NoError(t, m.Continue())
	clock.Advance(3*time.Second + 45*time.Second)
	st = m.Snapshot()
	assert.Equal(t, PhaseComplete, st.Phase)
	assert.Equal(t, 90, st.Minute)
}
