package solver

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/holdem"
)

// Progress reports periodic training status to a caller-supplied callback.
type Progress struct {
	Iteration       int
	RegretTableSize int
}

// Trainer orchestrates MCCFR iterations over the hold'em game model,
// fanning work out across ParallelTables worker goroutines with
// golang.org/x/sync/errgroup for structured cancellation — this supersedes
// the teacher's raw sync.WaitGroup plus a hand-rolled error mutex.
type Trainer struct {
	cfg     TrainingConfig
	regrets *RegretTable

	iteration atomic.Int64
	logger    *log.Logger
	clock     quartz.Clock
}

// NewTrainer validates cfg and returns a ready-to-run Trainer.
func NewTrainer(cfg TrainingConfig, logger *log.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Trainer{
		cfg:     cfg,
		regrets: NewRegretTable(),
		logger:  logger,
		clock:   quartz.NewReal(),
	}, nil
}

// WithClock overrides the trainer's clock, used by tests to drive
// checkpoint-interval behavior deterministically with a fake clock.
func (t *Trainer) WithClock(clock quartz.Clock) *Trainer {
	t.clock = clock
	return t
}

// RegretTable exposes the trained table, e.g. for persistence.
func (t *Trainer) RegretTable() *RegretTable {
	return t.regrets
}

// Iteration returns the number of completed iterations.
func (t *Trainer) Iteration() int {
	return int(t.iteration.Load())
}

// Train runs the configured number of iterations split across
// ParallelTables workers, invoking checkpoint at the configured interval
// and progress after every ProgressEvery completed iterations. Either
// callback may be nil. Train returns promptly if ctx is canceled between
// iterations.
func (t *Trainer) Train(ctx context.Context, checkpoint func(iteration int) error, progress func(Progress)) error {
	group, ctx := errgroup.WithContext(ctx)

	perWorker := t.cfg.Iterations / t.cfg.ParallelTables
	remainder := t.cfg.Iterations % t.cfg.ParallelTables

	for w := 0; w < t.cfg.ParallelTables; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		seed := t.cfg.Seed + int64(w)*0x9e3779b9
		group.Go(func() error {
			return t.runWorker(ctx, count, seed, progress)
		})
	}

	if checkpoint != nil && t.cfg.CheckpointEvery > 0 {
		group.Go(func() error {
			return t.runCheckpointTicker(ctx, checkpoint)
		})
	}

	return group.Wait()
}

func (t *Trainer) runWorker(ctx context.Context, count int, seed int64, progress func(Progress)) error {
	rng := newRNG(seed)

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.runIteration(rng); err != nil {
			return fmt.Errorf("solver: iteration failed: %w", err)
		}

		iter := int(t.iteration.Add(1))
		if progress != nil && t.cfg.ProgressEvery > 0 && iter%t.cfg.ProgressEvery == 0 {
			progress(Progress{Iteration: iter, RegretTableSize: t.regrets.Size()})
		}
	}
	return nil
}

func (t *Trainer) runIteration(rng *rand.Rand) error {
	stacks := make([]int, t.cfg.Players)
	for i := range stacks {
		stacks[i] = t.cfg.StartingStack
	}
	dealer := rng.Intn(t.cfg.Players)

	for traverser := 0; traverser < t.cfg.Players; traverser++ {
		g, err := holdem.NewGameState(stacks, dealer, t.cfg.SmallBlind, t.cfg.BigBlind, cards.NewDeck(rng))
		if err != nil {
			return err
		}
		t.traverse(g, traverser, 1.0, rng)
	}
	return nil
}

func (t *Trainer) runCheckpointTicker(ctx context.Context, checkpoint func(iteration int) error) error {
	ticker := t.clock.NewTicker(t.cfg.CheckpointEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := checkpoint(t.Iteration()); err != nil {
				return fmt.Errorf("solver: checkpoint failed: %w", err)
			}
		}
	}
}
