package solver

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() TrainingConfig {
	return TrainingConfig{
		Iterations:      4,
		Players:         2,
		Seed:            7,
		ParallelTables:  2,
		SmallBlind:      5,
		BigBlind:        10,
		StartingStack:   200,
		CheckpointEvery: time.Minute,
	}
}

func TestTrainRunsAllIterations(t *testing.T) {
	trainer, err := NewTrainer(testConfig(), nil)
	require.NoError(t, err)

	err = trainer.Train(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, trainer.Iteration())
	assert.Greater(t, trainer.RegretTable().Size(), 0)
}

func TestTrainRespectsContextCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Iterations = 1_000_000
	cfg.ParallelTables = 1
	trainer, err := NewTrainer(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = trainer.Train(ctx, nil, nil)
	assert.Error(t, err)
}

func TestCheckpointFiresOnFakeClockTick(t *testing.T) {
	mock := quartz.NewMock(t)
	cfg := testConfig()
	cfg.Iterations = 2
	cfg.ParallelTables = 1
	cfg.CheckpointEvery = 10 * time.Second

	trainer, err := NewTrainer(cfg, nil)
	require.NoError(t, err)
	trainer.WithClock(mock)

	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- trainer.Train(ctx, func(int) error {
			calls.Add(1)
			return nil
		}, nil)
	}()

	mock.Advance(10 * time.Second)
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.GreaterOrEqual(t, calls.Load(), int64(1))
}
