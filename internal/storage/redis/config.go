package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types. Zero means no expiry.
	GuestPlayerTTL   time.Duration
	MatchTTL         time.Duration
	FinishedMatchTTL time.Duration // applied once a match is over or abandoned
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		GuestPlayerTTL:   24 * time.Hour,
		MatchTTL:         7 * 24 * time.Hour,
		FinishedMatchTTL: 24 * time.Hour,
	}
}
