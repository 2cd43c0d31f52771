package engine

import "errors"

var (
	ErrUnknownCompetitor    = errors.New("fixture references an unknown competitor")
	ErrFixtureNotFound      = errors.New("fixture not found in the current round")
	ErrAlreadyResolved      = errors.New("fixture already has a result")
	ErrCompetitionFinished  = errors.New("competition is already finished")
	ErrNotEnoughCompetitors = errors.New("not enough competitors")
	ErrUndecidedResult      = errors.New("knockout result must have a winner")
	ErrTrackedStillIn       = errors.New("tracked competitor still has a fixture to play")
	ErrMalformedBracket     = errors.New("malformed bracket")
)
