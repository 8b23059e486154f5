// Package blueprintio bridges internal/persist's on-disk format to
// internal/advisor's Blueprint interface and internal/solver's RegretTable,
// so every command-line entry point (solver, advisor, advisor-tui,
// advisor-server) loads and saves blueprints the same way.
package blueprintio

import (
	"fmt"
	"os"

	"github.com/cardshark/holdem-solver/internal/infoset"
	"github.com/cardshark/holdem-solver/internal/persist"
	"github.com/cardshark/holdem-solver/internal/solver"
)

// Table is a read-only, loaded average-strategy blueprint. It satisfies
// advisor.Blueprint.
type Table struct {
	strategies map[string][]float64
}

// Load reads the file at path (in internal/persist's byte-exact format)
// and normalizes each entry's strategy-sum accumulator into a probability
// distribution once, at load time.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blueprintio: open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := persist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("blueprintio: read %s: %w", path, err)
	}

	strategies := make(map[string][]float64, len(entries))
	for _, e := range entries {
		strategies[e.Key] = normalize(e.StrategySum)
	}
	return &Table{strategies: strategies}, nil
}

// AverageStrategy implements advisor.Blueprint.
func (t *Table) AverageStrategy(key infoset.Key) ([]float64, bool) {
	s, ok := t.strategies[key.String()]
	return s, ok
}

// Len returns the number of information sets loaded.
func (t *Table) Len() int {
	return len(t.strategies)
}

// Save writes regrets' raw strategy-sum accumulators to path in the
// internal/persist format, for use by a trainer's checkpoint/final-output
// path.
func Save(regrets *solver.RegretTable, path string) error {
	var entries []persist.Entry
	regrets.Range(func(key string, node *solver.RegretNode) {
		entries = append(entries, persist.Entry{Key: key, StrategySum: node.StrategySum()})
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("blueprintio: create %s: %w", path, err)
	}
	defer f.Close()
	if err := persist.Write(f, entries); err != nil {
		return fmt.Errorf("blueprintio: write %s: %w", path, err)
	}
	return nil
}

func normalize(sum []float64) []float64 {
	total := 0.0
	for _, s := range sum {
		total += s
	}
	out := make([]float64, len(sum))
	if total <= 0 {
		if len(out) == 0 {
			return out
		}
		v := 1.0 / float64(len(sum))
		for i := range out {
			out[i] = v
		}
		return out
	}
	for i, s := range sum {
		out[i] = s / total
	}
	return out
}
