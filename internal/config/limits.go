package config

import "time"

type Limits struct {
	// MaxConcurrentReviews bounds the batch sweep fan-out. Each review
	// holds one in-flight AI request, so this is effectively the request
	// concurrency cap.
	MaxConcurrentReviews int           `yaml:"max_concurrent_reviews" validate:"required,min=1,max=100"`
	MaxActSize           int           `yaml:"max_act_size" validate:"required,min=1000,max=1000000"`
	MaxRetries           int           `yaml:"max_retries" validate:"min=0,max=10"`
	ReviewTimeout        time.Duration `yaml:"review_timeout" validate:"required,min=10s,max=1h"`
	// DraftFlushInterval is how long the draft autosave waits after the
	// last keystroke-level update before writing to disk.
	DraftFlushInterval time.Duration `yaml:"draft_flush_interval" validate:"required,min=100ms,max=5m"`
	RateLimit          RateLimit     `yaml:"rate_limit"`
}

type RateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"required,min=1,max=1000"`
	BurstSize         int `yaml:"burst_size" validate:"required,min=1,max=100"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxConcurrentReviews: 4,
		MaxActSize:           200000,
		MaxRetries:           3,
		ReviewTimeout:        5 * time.Minute,
		DraftFlushInterval:   2 * time.Second,
		RateLimit: RateLimit{
			RequestsPerMinute: 30,
			BurstSize:         5,
		},
	}
}

func (l *Limits) applyDefaults() {
	defaults := DefaultLimits()
	if l.MaxConcurrentReviews == 0 {
		l.MaxConcurrentReviews = defaults.MaxConcurrentReviews
	}
	if l.MaxActSize == 0 {
		l.MaxActSize = defaults.MaxActSize
	}
	if l.ReviewTimeout == 0 {
		l.ReviewTimeout = defaults.ReviewTimeout
	}
	if l.DraftFlushInterval == 0 {
		l.DraftFlushInterval = defaults.DraftFlushInterval
	}
	if l.RateLimit.RequestsPerMinute == 0 {
		l.RateLimit.RequestsPerMinute = defaults.RateLimit.RequestsPerMinute
	}
	if l.RateLimit.BurstSize == 0 {
		l.RateLimit.BurstSize = defaults.RateLimit.BurstSize
	}
}
