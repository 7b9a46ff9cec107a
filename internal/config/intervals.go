package config

import "time"

// Worker intervals
const (
	// CaptureCycleInterval defines how often a full capture cycle runs
	CaptureCycleInterval = 3 * time.Hour

	// RedisBackupInterval defines how often to save changes to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often to save changes to PostgreSQL
	PostgresBackupInterval = 60 * time.Second
)
