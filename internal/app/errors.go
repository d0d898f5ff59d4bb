package service

import "errors"

// Sentinel kinds for service-level failures. Messages are surfaced to
// callers verbatim.
var (
	// ErrNotManager rejects a nudge from anyone but the recipient's
	// manager.
	ErrNotManager = errors.New("only the recipient's manager can send a nudge")

	// ErrUnknownRecipient rejects a nudge to an email the directory does
	// not know.
	ErrUnknownRecipient = errors.New("nudge recipient not found")

	// ErrStoreFailed wraps entry store write failures.
	ErrStoreFailed = errors.New("entry store write failed")
)
