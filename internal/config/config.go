// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and environment.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Debug enables local-development behavior such as the ?user= identity
	// fallback. Never enable in production.
	Debug bool `koanf:"debug"`

	// StoreDriver selects the entry/nudge store backend: sqlite or memory.
	StoreDriver string `koanf:"store_driver"`

	// StorePath is the SQLite database path.
	StorePath string `koanf:"store_path"`

	// IdentityHeader carries the JSON credentials blob set by the hosting
	// proxy, e.g. {"user": "jdoe"}.
	IdentityHeader string `koanf:"identity_header"`

	// DevIdentity is the identity assumed in debug mode when no header or
	// ?user= override is present.
	DevIdentity string `koanf:"dev_identity"`

	// DirectoryBaseURL and DirectoryAPIKey configure the user-directory API.
	DirectoryBaseURL string `koanf:"directory_base_url"`
	DirectoryAPIKey  string `koanf:"directory_api_key"`

	// DirectoryCacheSize bounds the username lookup cache.
	DirectoryCacheSize int `koanf:"directory_cache_size"`

	// DirectoryCacheTTLSeconds bounds how long a lookup stays cached.
	DirectoryCacheTTLSeconds int `koanf:"directory_cache_ttl_seconds"`

	// CatalogPath points at the projects CSV file.
	CatalogPath string `koanf:"catalog_path"`

	// CatalogReloadSeconds sets the catalog reload interval.
	CatalogReloadSeconds int `koanf:"catalog_reload_seconds"`

	// NotifyWorkers sets the number of notification delivery workers.
	NotifyWorkers int `koanf:"notify_workers"`

	// NotifyQueueSize bounds the in-memory notification queue.
	NotifyQueueSize int `koanf:"notify_queue_size"`

	// EmailProvider selects the notification sink: console or sendgrid.
	EmailProvider string `koanf:"email_provider"`

	// SendgridAPIKey authenticates against the SendGrid API.
	SendgridAPIKey string `koanf:"sendgrid_api_key"`

	// EmailFrom is the sender address for outbound mail.
	EmailFrom string `koanf:"email_from"`

	// EmailSubjectPrefix is prepended to every outbound subject.
	EmailSubjectPrefix string `koanf:"email_subject_prefix"`

	// ScoreWindowWeeks sets the scoring look-back per kind.
	ScoreWindowWeeks int `koanf:"score_window_weeks"`

	// ScoreGraceDays sets the on-time grace window after an anchor date.
	ScoreGraceDays int `koanf:"score_grace_days"`

	// ScoreVacuous is the score reported when no scoring slots exist yet.
	ScoreVacuous int `koanf:"score_vacuous"`

	// NudgePenalty is the points deducted per recent nudge.
	NudgePenalty int `koanf:"nudge_penalty"`

	// NudgeLookbackWeeks bounds which nudges count against the score.
	NudgeLookbackWeeks int `koanf:"nudge_lookback_weeks"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":9090",
		Debug:                    false,
		StoreDriver:              "sqlite",
		StorePath:                "cadence.db",
		IdentityHeader:           "X-Connect-Credentials",
		DevIdentity:              "dev.user@example.com",
		DirectoryBaseURL:         "",
		DirectoryAPIKey:          "",
		DirectoryCacheSize:       100,
		DirectoryCacheTTLSeconds: 300,
		CatalogPath:              "projects.csv",
		CatalogReloadSeconds:     300,
		NotifyWorkers:            runtime.NumCPU(),
		NotifyQueueSize:          1024,
		EmailProvider:            "console",
		EmailFrom:                "cadence@example.com",
		EmailSubjectPrefix:       "[Cadence] ",
		ScoreWindowWeeks:         8,
		ScoreGraceDays:           1,
		ScoreVacuous:             100,
		NudgePenalty:             2,
		NudgeLookbackWeeks:       8,
	}
}
