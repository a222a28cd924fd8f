package redis

import "time"

// DefaultKeyPrefix namespaces schedule keys when Config.KeyPrefix is empty
const DefaultKeyPrefix = "racesched"

// Config holds Redis settings for the schedule store
type Config struct {
	// URL is the Redis connection URL, e.g. redis://localhost:6379/0
	URL string

	PoolSize     int
	MinIdleConns int

	// KeyPrefix namespaces every key written by the store
	KeyPrefix string

	// RecordTTL expires place and race records. Zero keeps them forever.
	RecordTTL time.Duration
}

// DefaultConfig returns the settings used when none are configured
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		KeyPrefix:    DefaultKeyPrefix,
	}
}

func (c Config) keys() keyspace {
	if c.KeyPrefix == "" {
		return DefaultKeyPrefix
	}
	return keyspace(c.KeyPrefix)
}
