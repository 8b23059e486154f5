package statistics

import (
	"math"
	"sync"
)

// PlayerProfile tracks the observed tendencies of one seat across the
// hands a RiskProfiler has watched. It never feeds back into the solver's
// regret tables; it exists purely for advisory display and logging.
type PlayerProfile struct {
	AggressionFrequency float64
	BluffFrequency      float64
	AvgBetSizeRatio     float64
	HandsObserved       int

	aggressiveActions int
	bluffActions      int
	betSizeRatioSum   float64
	betSizeSamples    int
}

// StackTracker follows one player's stack across the hand currently being
// observed, plus the bet-size history needed to compute it.
type StackTracker struct {
	InitialStack           float64
	CurrentStack           float64
	TotalCommittedThisHand float64
	BetHistory             []float64
}

// StackPercentageCommitted returns how much of the initial stack has gone
// into the pot this hand, as a percentage.
func (s *StackTracker) StackPercentageCommitted() float64 {
	if s.InitialStack == 0 {
		return 0
	}
	return (s.TotalCommittedThisHand / s.InitialStack) * 100
}

// RiskProfiler accumulates per-player behavioral statistics from observed
// actions and blends them with an externally supplied win probability into
// a risk score. No other package in the module uses it.
type RiskProfiler struct {
	mu            sync.Mutex
	riskTolerance float64
	profiles      map[string]*PlayerProfile
	trackers      map[string]*StackTracker
}

// NewRiskProfiler returns a profiler with the given risk tolerance in
// [0,1]; 0.5 is neutral.
func NewRiskProfiler(riskTolerance float64) *RiskProfiler {
	return &RiskProfiler{
		riskTolerance: riskTolerance,
		profiles:      make(map[string]*PlayerProfile),
		trackers:      make(map[string]*StackTracker),
	}
}

// AddPlayer registers playerID with a neutral starting profile and a fresh
// stack tracker seeded at initialStack.
func (r *RiskProfiler) AddPlayer(playerID string, initialStack float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[playerID] = &PlayerProfile{
		AggressionFrequency: 0.5,
		BluffFrequency:      0.1,
		AvgBetSizeRatio:     0.5,
	}
	r.trackers[playerID] = &StackTracker{
		InitialStack: initialStack,
		CurrentStack: initialStack,
	}
}

// Action names understood by UpdatePlayerProfile. Anything else is
// recorded as a passive action (no aggression/bluff credit).
const (
	ActionBet   = "bet"
	ActionRaise = "raise"
	ActionCall  = "call"
	ActionCheck = "check"
	ActionFold  = "fold"
)

// UpdatePlayerProfile folds one observed action into playerID's running
// aggression/bluff/bet-sizing averages. A bet or raise counts as
// aggression; a bet or raise sized below a third of the pot is treated as
// a bluff-shaped action, regardless of earlier aggression in the hand,
// matching the heuristic the original risk profiler called out without
// implementing (aggression by a weak hand is invisible to us here — we can
// only observe sizing, not holdings).
func (r *RiskProfiler) UpdatePlayerProfile(playerID, action string, betAmount, potSize float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[playerID]
	if !ok {
		p = &PlayerProfile{AggressionFrequency: 0.5, BluffFrequency: 0.1, AvgBetSizeRatio: 0.5}
		r.profiles[playerID] = p
	}

	p.HandsObserved++

	isAggressive := action == ActionBet || action == ActionRaise
	if isAggressive {
		p.aggressiveActions++
	}
	p.AggressionFrequency = float64(p.aggressiveActions) / float64(p.HandsObserved)

	if isAggressive && potSize > 0 {
		ratio := betAmount / potSize
		p.betSizeSamples++
		p.betSizeRatioSum += ratio
		p.AvgBetSizeRatio = p.betSizeRatioSum / float64(p.betSizeSamples)

		if ratio < 0.33 {
			p.bluffActions++
		}
	}
	if p.HandsObserved > 0 {
		p.BluffFrequency = float64(p.bluffActions) / float64(p.HandsObserved)
	}
}

// UpdateStack records a chip commitment of amount for playerID, reducing
// its current stack and extending its bet history.
func (r *RiskProfiler) UpdateStack(playerID string, amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trackers[playerID]
	if !ok {
		return
	}
	t.CurrentStack -= amount
	t.TotalCommittedThisHand += amount
	t.BetHistory = append(t.BetHistory, amount)
}

// CalculateRiskScore blends playerID's observed tendencies, its current
// stack commitment, and an externally supplied win probability (e.g. from
// internal/equity or the advisor's blueprint lookup) into a single score in
// [0,1]. Higher means riskier relative to the profiler's tolerance: a
// player over-committing a deep stack into a spot their estimated equity
// doesn't support scores high.
func (r *RiskProfiler) CalculateRiskScore(playerID, action string, betAmount, potSize, adjustedWinProbability float64) float64 {
	r.mu.Lock()
	profile, hasProfile := r.profiles[playerID]
	tracker, hasTracker := r.trackers[playerID]
	r.mu.Unlock()

	if !hasProfile {
		profile = &PlayerProfile{AggressionFrequency: 0.5, BluffFrequency: 0.1, AvgBetSizeRatio: 0.5}
	}

	potOdds := 0.0
	if isAggressiveAction(action) && potSize+betAmount > 0 {
		potOdds = betAmount / (potSize + betAmount)
	}

	stackPressure := 0.0
	if hasTracker {
		stackPressure = math.Min(tracker.StackPercentageCommitted()/100, 1.0)
	}

	// How far the bet's implied pot odds exceed the hero's actual equity:
	// positive means the action is priced worse than its showdown value.
	edgeShortfall := math.Max(0, potOdds-adjustedWinProbability)

	score := 0.4*edgeShortfall + 0.3*stackPressure + 0.2*profile.AggressionFrequency + 0.1*profile.BluffFrequency
	score *= 1 + (r.riskTolerance - 0.5)
	return math.Min(math.Max(score, 0), 1)
}

func isAggressiveAction(action string) bool {
	return action == ActionBet || action == ActionRaise || action == ActionAllIn
}

// ActionAllIn marks an all-in shove as aggressive for risk-scoring purposes.
const ActionAllIn = "all-in"

// GetPlayerProfile returns playerID's profile, or the zero-value
// PlayerProfile (not the neutral defaults AddPlayer seeds) if it has never
// been observed.
func (r *RiskProfiler) GetPlayerProfile(playerID string) PlayerProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.profiles[playerID]; ok {
		return *p
	}
	return PlayerProfile{}
}

// ResetHand clears per-hand stack commitment tracking ahead of a new deal,
// leaving cross-hand tendency profiles intact.
func (r *RiskProfiler) ResetHand() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.trackers {
		t.TotalCommittedThisHand = 0
		t.BetHistory = t.BetHistory[:0]
	}
}
