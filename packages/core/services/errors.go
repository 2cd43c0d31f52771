package services

import "errors"

var (
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrCompetitorExists   = errors.New("competitor already exists")
	ErrNoActiveLeague     = errors.New("no league in progress")
	ErrNoActiveTournament = errors.New("no tournament in progress")
	ErrNoFixture          = errors.New("no fixture to play")
	ErrSessionNotFound    = errors.New("match session not found")
	ErrSessionActive      = errors.New("a match is already in progress for this profile")
	ErrInvalidMatch       = errors.New("invalid match request")
)
