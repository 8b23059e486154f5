package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/blueprintio"
	"github.com/cardshark/holdem-solver/internal/solver"
	"github.com/cardshark/holdem-solver/internal/solverconfig"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train TrainCmd `cmd:"" help:"run MCCFR training and write a blueprint"`
	Eval  EvalCmd  `cmd:"" help:"self-play a trained blueprint against a uniform-random baseline"`
}

// TrainCmd runs a training session, optionally seeded from an HCL config
// file, and writes the resulting average-strategy blueprint in the
// byte-exact internal/persist format.
type TrainCmd struct {
	Out             string `help:"path to write the trained blueprint" required:""`
	Config          string `help:"HCL config file (see internal/solverconfig)"`
	Iterations      int    `help:"override iteration count from config (0 keeps config value)"`
	Parallel        int    `help:"override parallel table count from config (0 keeps config value)"`
	Seed            int64  `help:"override RNG seed from config (0 keeps config value)"`
	CheckpointPath  string `help:"path to write periodic blueprint checkpoints"`
	CheckpointMins  int    `help:"checkpoint interval in minutes (0 keeps config value)" default:"10"`
	CPUProfile      string `help:"write a CPU profile to this path"`
}

// EvalCmd runs self-play hands between a loaded blueprint's advisor and a
// uniform-random baseline strategy, reporting bb/100 the way the teacher's
// evaluation tooling did, but driven entirely by the new game model.
type EvalCmd struct {
	Blueprint string `help:"path to a blueprint written by train" required:""`
	Hands     int    `help:"number of hands to simulate" default:"10000"`
	Seed      int64  `help:"random seed; 0 derives one from time" default:"0"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("holdem-solver MCCFR training and evaluation tooling"),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "train":
		err = cli.Train.Run(context.Background(), logger)
	case "eval":
		err = cli.Eval.Run(context.Background(), logger)
	default:
		logger.Fatalf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Run trains a blueprint per cmd's config/overrides and persists it to Out.
func (cmd *TrainCmd) Run(ctx context.Context, logger *log.Logger) error {
	file, err := solverconfig.Load(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	trainCfg := file.TrainingConfig()

	if cmd.Iterations > 0 {
		trainCfg.Iterations = cmd.Iterations
	}
	if cmd.Parallel > 0 {
		trainCfg.ParallelTables = cmd.Parallel
	}
	if cmd.Seed != 0 {
		trainCfg.Seed = cmd.Seed
	}
	if cmd.CheckpointMins > 0 {
		trainCfg.CheckpointEvery = time.Duration(cmd.CheckpointMins) * time.Minute
	}

	if cmd.CPUProfile != "" {
		f, err := os.Create(cmd.CPUProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", cmd.CPUProfile)
	}

	trainer, err := solver.NewTrainer(trainCfg, logger)
	if err != nil {
		return fmt.Errorf("new trainer: %w", err)
	}

	logger.Info("starting training run",
		"iterations", trainCfg.Iterations,
		"players", trainCfg.Players,
		"parallel_tables", trainCfg.ParallelTables,
		"seed", trainCfg.Seed,
	)

	checkpoint := func(iteration int) error {
		if cmd.CheckpointPath == "" {
			return nil
		}
		logger.Info("writing checkpoint", "iteration", iteration, "path", cmd.CheckpointPath)
		return blueprintio.Save(trainer.RegretTable(), cmd.CheckpointPath)
	}
	progress := func(p solver.Progress) {
		logger.Info("progress", "iteration", p.Iteration, "infosets", p.RegretTableSize)
	}

	start := time.Now()
	if err := trainer.Train(ctx, checkpoint, progress); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	duration := time.Since(start)

	if err := blueprintio.Save(trainer.RegretTable(), cmd.Out); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	logger.Info("training completed",
		"duration", duration,
		"infosets", trainer.RegretTable().Size(),
		"path", cmd.Out,
	)
	return nil
}
