package bucket

import (
	"fmt"
	"sync"

	"github.com/opencoff/go-chd"
)

// canonicalHoleKey returns the 169-combo canonical string for a starting
// hand, e.g. "AKs", "AKo", "77".
func canonicalHoleKey(hi, lo uint8, suited bool) string {
	const ranks = "23456789TJQKA"
	if hi == lo {
		return fmt.Sprintf("%c%c", ranks[hi], ranks[lo])
	}
	if suited {
		return fmt.Sprintf("%c%cs", ranks[hi], ranks[lo])
	}
	return fmt.Sprintf("%c%co", ranks[hi], ranks[lo])
}

// preflopTable is a minimal perfect hash over the 169 canonical starting
// hands, built lazily on the first HolePairBucket call. Classify does not
// consult it; it applies the preflop rules directly.
type preflopTable struct {
	mph     *chd.CHD
	buckets []Bucket
}

var (
	preflopOnce  sync.Once
	preflopTbl   *preflopTable
	preflopBuild error
)

func buildPreflopTable() (*preflopTable, error) {
	keys := make([][]byte, 0, 169)
	order := make([]string, 0, 169)
	const ranks = "23456789TJQKA"
	for hi := int8(12); hi >= 0; hi-- {
		for lo := hi; lo >= 0; lo-- {
			if hi == lo {
				k := canonicalHoleKey(uint8(hi), uint8(lo), false)
				keys = append(keys, []byte(k))
				order = append(order, k)
				continue
			}
			for _, suited := range []bool{true, false} {
				k := canonicalHoleKey(uint8(hi), uint8(lo), suited)
				keys = append(keys, []byte(k))
				order = append(order, k)
			}
		}
	}
	_ = ranks

	b, err := chd.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("preflop table: new builder: %w", err)
	}
	for _, k := range keys {
		if err := b.Add(k); err != nil {
			return nil, fmt.Errorf("preflop table: add key %q: %w", k, err)
		}
	}
	mph, err := b.Freeze(0.9)
	if err != nil {
		return nil, fmt.Errorf("preflop table: freeze: %w", err)
	}

	buckets := make([]Bucket, len(order))
	for _, k := range order {
		idx := mph.Find([]byte(k))
		buckets[idx] = classifyCanonicalKey(k)
	}

	return &preflopTable{mph: mph, buckets: buckets}, nil
}

// classifyCanonicalKey reclassifies a canonical string ("AKs", "77", ...)
// using the same rule table as classifyPreflop, so the precomputed table
// and the direct path never disagree.
func classifyCanonicalKey(key string) Bucket {
	const ranks = "23456789TJQKA"
	rankOf := func(b byte) uint8 {
		for i := 0; i < len(ranks); i++ {
			if ranks[i] == b {
				return uint8(i)
			}
		}
		return 0
	}

	hi := rankOf(key[0])
	lo := rankOf(key[1])
	suited := len(key) == 3 && key[2] == 's'
	if hi == lo {
		switch {
		case hi >= 10: // Queen+
			return Nuts
		case hi >= 7: // Nine-Jack
			return OverPair
		case hi >= 4: // Six-Eight
			return TopPair
		default:
			return MiddlePair
		}
	}

	switch {
	case hi == 12 && lo >= 8: // Ace, ten+
		if suited {
			return StrongMade
		}
		return TopPair
	case hi == 11 && lo >= 8: // King, ten+
		if suited {
			return TopPair
		}
		return MiddlePair
	case hi == 9 && lo >= 7: // Jack, nine+
		if suited {
			return MiddlePair
		}
		return WeakPair
	case hi >= 8 || suited:
		return WeakPair
	default:
		return Air
	}
}

// HolePairBucket looks up the preflop bucket for a canonical starting-hand
// string via the compressed perfect-hash table, falling back to the direct
// rule evaluation if the table failed to build.
func HolePairBucket(canonicalKey string) Bucket {
	preflopOnce.Do(func() {
		preflopTbl, preflopBuild = buildPreflopTable()
	})
	if preflopBuild != nil || preflopTbl == nil {
		return classifyCanonicalKey(canonicalKey)
	}
	idx := preflopTbl.mph.Find([]byte(canonicalKey))
	if idx >= uint64(len(preflopTbl.buckets)) {
		return classifyCanonicalKey(canonicalKey)
	}
	return preflopTbl.buckets[idx]
}
