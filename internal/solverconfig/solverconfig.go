// Package solverconfig loads training and abstraction parameters from an
// HCL file, the same configuration format the teacher's server command
// uses for its table/bot layout.
package solverconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardshark/holdem-solver/internal/solver"
)

// File is the top-level shape of a solver HCL config file.
type File struct {
	Training    TrainingBlock    `hcl:"training,block"`
	Abstraction AbstractionBlock `hcl:"abstraction,block"`
}

// TrainingBlock mirrors solver.TrainingConfig's tunables.
type TrainingBlock struct {
	Iterations           int    `hcl:"iterations,optional"`
	Players              int    `hcl:"players,optional"`
	ParallelTables       int    `hcl:"parallel_tables,optional"`
	ProgressEvery        int    `hcl:"progress_every,optional"`
	Seed                 int    `hcl:"seed,optional"`
	CheckpointEverySecs  int    `hcl:"checkpoint_every_secs,optional"`
	SmallBlind           int    `hcl:"small_blind,optional"`
	BigBlind             int    `hcl:"big_blind,optional"`
	StartingStack        int    `hcl:"starting_stack,optional"`
	ClampNegativeRegrets bool   `hcl:"clamp_negative_regrets,optional"`
	LinearAveraging      bool   `hcl:"linear_averaging,optional"`
}

// AbstractionBlock holds abstraction settings. Its only field,
// PreflopTable, is decoded but not read anywhere; the bucket rules are
// fixed in the bucket package.
type AbstractionBlock struct {
	PreflopTable string `hcl:"preflop_table,optional"`
}

// Default returns the file shape seeded with solver.DefaultTrainingConfig.
func Default() *File {
	d := solver.DefaultTrainingConfig()
	return &File{
		Training: TrainingBlock{
			Iterations:          d.Iterations,
			Players:             d.Players,
			ParallelTables:      d.ParallelTables,
			ProgressEvery:       d.ProgressEvery,
			Seed:                int(d.Seed),
			CheckpointEverySecs: int(d.CheckpointEvery / time.Second),
			SmallBlind:          d.SmallBlind,
			BigBlind:            d.BigBlind,
			StartingStack:       d.StartingStack,
			ClampNegativeRegrets: d.ClampNegativeRegrets,
			LinearAveraging:      d.LinearAveraging,
		},
		Abstraction: AbstractionBlock{PreflopTable: "default"},
	}
}

// Load reads filename and decodes it into a File seeded with Default(), so
// any attribute absent from a block keeps its default value. A missing file
// is not an error — it returns Default().
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("solverconfig: parse %s: %s", filename, diags.Error())
	}

	cfg := Default()
	diags = gohcl.DecodeBody(hclFile.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("solverconfig: decode %s: %s", filename, diags.Error())
	}
	if cfg.Abstraction.PreflopTable == "" {
		cfg.Abstraction.PreflopTable = "default"
	}
	return cfg, nil
}

// TrainingConfig converts the decoded HCL block into the solver's native
// config type.
func (f *File) TrainingConfig() solver.TrainingConfig {
	t := f.Training
	return solver.TrainingConfig{
		Iterations:           t.Iterations,
		Players:              t.Players,
		ParallelTables:       t.ParallelTables,
		ProgressEvery:        t.ProgressEvery,
		Seed:                 int64(t.Seed),
		CheckpointEvery:      time.Duration(t.CheckpointEverySecs) * time.Second,
		SmallBlind:           t.SmallBlind,
		BigBlind:             t.BigBlind,
		StartingStack:        t.StartingStack,
		ClampNegativeRegrets: t.ClampNegativeRegrets,
		LinearAveraging:      t.LinearAveraging,
	}
}
