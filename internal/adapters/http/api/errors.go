package api

import "errors"

// Sentinel kinds for API errors. Messages are surfaced to clients.
var (
	ErrUnauthenticated = errors.New("unable to identify user")
	ErrNoData          = errors.New("no data provided")
	ErrMissingDate     = errors.New("week commencing date is required")
	ErrBadDate         = errors.New("date must be YYYY-MM-DD")
	ErrMissingKind     = errors.New("submission type is required")
	ErrMissingNudgeID  = errors.New("nudge id is required")
	ErrMissingToEmail  = errors.New("to_email is required")
	ErrNudgeNotFound   = errors.New("nudge not found")
)
