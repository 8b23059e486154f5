// Package infoset builds the information-set keys that index the regret
// table: a pipe-delimited encoding of bucket, street, action history, and
// legal-action arity.
package infoset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cardshark/holdem-solver/internal/bucket"
)

// Key uniquely identifies the decision a player faces. Two states that
// differ only by which absolute seats are involved, but agree on bucket,
// street, relative-seat history, and legal-action count, map to the same
// Key — this is what lets CFR share experience across rotationally
// equivalent situations.
type Key struct {
	Bucket       bucket.Bucket
	Street       bucket.Street
	History      string
	ActionArity  int
}

// String renders the key in the exact format persisted to, and looked up
// from, the regret and strategy tables:
// "<bucket>|<street>|<history>|<arity>".
func (k Key) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(k.Bucket)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(k.Street)))
	sb.WriteByte('|')
	sb.WriteString(k.History)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(k.ActionArity))
	return sb.String()
}

// New builds a Key from its components.
func New(b bucket.Bucket, street bucket.Street, history string, arity int) Key {
	return Key{Bucket: b, Street: street, History: history, ActionArity: arity}
}

// Parse inverts String, for tooling that inspects a persisted table.
func Parse(s string) (Key, error) {
	parts := strings.SplitN(s, "|", 4)
	if len(parts) != 4 {
		return Key{}, fmt.Errorf("infoset: malformed key %q: want 4 pipe-delimited fields", s)
	}
	b, err := strconv.Atoi(parts[0])
	if err != nil {
		return Key{}, fmt.Errorf("infoset: bad bucket field %q: %w", parts[0], err)
	}
	street, err := strconv.Atoi(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("infoset: bad street field %q: %w", parts[1], err)
	}
	arity, err := strconv.Atoi(parts[3])
	if err != nil {
		return Key{}, fmt.Errorf("infoset: bad arity field %q: %w", parts[3], err)
	}
	return Key{
		Bucket:      bucket.Bucket(b),
		Street:      bucket.Street(street),
		History:     parts[2],
		ActionArity: arity,
	}, nil
}
