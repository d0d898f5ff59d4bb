package repository

import "time"

// Option applies a configuration option to a store.
type Option func(*storeConfig)

type storeConfig struct {
	now func() time.Time
}

func newStoreConfig(opts []Option) storeConfig {
	cfg := storeConfig{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithClock overrides the write-timestamp clock. Tests use this to pin
// WrittenAt values.
func WithClock(now func() time.Time) Option {
	return func(c *storeConfig) {
		if now != nil {
			c.now = now
		}
	}
}
