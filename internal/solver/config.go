package solver

import (
	"errors"
	"time"
)

// TrainingConfig aggregates parameters controlling one MCCFR run.
type TrainingConfig struct {
	Iterations      int
	Players         int
	Seed            int64
	ParallelTables  int
	CheckpointEvery time.Duration
	ProgressEvery   int

	SmallBlind    int
	BigBlind      int
	StartingStack int

	ClampNegativeRegrets bool
	LinearAveraging      bool
}

// Validate checks that the configuration is safe to train with.
func (c TrainingConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.New("solver: iterations must be > 0")
	}
	if c.Players < 2 || c.Players > 6 {
		return errors.New("solver: players must be in [2,6]")
	}
	if c.ParallelTables <= 0 {
		return errors.New("solver: parallel tables must be > 0")
	}
	if c.CheckpointEvery < 0 {
		return errors.New("solver: checkpoint interval cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("solver: progress interval cannot be negative")
	}
	if c.SmallBlind <= 0 {
		return errors.New("solver: small blind must be > 0")
	}
	if c.BigBlind <= c.SmallBlind {
		return errors.New("solver: big blind must exceed small blind")
	}
	if c.StartingStack <= 0 {
		return errors.New("solver: starting stack must be > 0")
	}
	return nil
}

// DefaultTrainingConfig returns a small configuration suitable for smoke
// tests and local experimentation.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:      1000,
		Players:         2,
		Seed:            1,
		ParallelTables:  1,
		CheckpointEvery: 5 * time.Minute,
		ProgressEvery:   100,
		SmallBlind:      5,
		BigBlind:        10,
		StartingStack:   1000,
	}
}
