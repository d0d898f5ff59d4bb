package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr            = errors.New("addr must not be empty")
	ErrUnknownStoreDriver   = errors.New("store_driver must be sqlite or memory")
	ErrUnknownEmailProvider = errors.New("email_provider must be console or sendgrid")
	ErrInvalidScoreWindow   = errors.New("score_window_weeks must be at least 1")
)
