// Package results records the outcome of finished game sessions.
package results

import (
	"context"
	"time"
)

// Result is one recorded game outcome
type Result struct {
	GameID     string
	Won        bool
	Moves      int
	Score      int
	Duration   time.Duration
	FinishedAt time.Time
}

// Store persists game results
type Store interface {
	Record(ctx context.Context, r Result) error
	Recent(ctx context.Context, limit int) ([]Result, error)
	Close() error
}
