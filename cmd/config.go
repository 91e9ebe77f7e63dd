package cmd

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/services"
)

// Config carries everything the composition root needs: database coordinates,
// the durable storage key, the progression timing and the polling cadence.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	HistoryStorageKey string

	ShortDelay   time.Duration
	MediumDelay  time.Duration
	CancelDelay  time.Duration
	DeliverDelay time.Duration

	CancelProbability  float64
	StallProbability   float64
	DeliverProbability float64

	PollInterval time.Duration
}

// Timing assembles the progression timing from the configured values.
func (c Config) Timing() services.ProgressionTiming {
	return services.ProgressionTiming{
		ShortDelay:         c.ShortDelay,
		MediumDelay:        c.MediumDelay,
		CancelDelay:        c.CancelDelay,
		DeliverDelay:       c.DeliverDelay,
		CancelProbability:  c.CancelProbability,
		StallProbability:   c.StallProbability,
		DeliverProbability: c.DeliverProbability,
	}
}

// DSN builds the connection string for the application database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// MaintenanceDSN builds a connection string against the built-in postgres
// database, used only to create the application database when it is missing.
func (c Config) MaintenanceDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBSslMode)
}
