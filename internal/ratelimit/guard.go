// Package ratelimit admits or rejects inbound user actions before any
// handler runs. Rejections are normal outcomes, never errors.
package ratelimit

import (
	"sync"
	"time"
)

type Reason string

const (
	ReasonPacing Reason = "pacing"
	ReasonFlood  Reason = "flood"
)

// Decision is the outcome of one admission check. Wait tells the caller
// how long the user should hold off when the action was rejected.
type Decision struct {
	Allowed bool
	Reason  Reason
	Wait    time.Duration
}

type Config struct {
	// MinInterval is the pacing gate's minimum gap between accepted actions.
	MinInterval time.Duration
	// FloodWindow and FloodThreshold drive the flood gate: more than
	// FloodThreshold actions inside FloodWindow triggers a penalty.
	FloodWindow    time.Duration
	FloodThreshold int
	// PenaltyBase is the first penalty duration; repeated violations while
	// the user is still tracked triple it, capped at PenaltyCap.
	PenaltyBase time.Duration
	PenaltyCap  time.Duration
	// IdleTTL is how long a user may be silent before housekeeping drops
	// their pacing entry.
	IdleTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinInterval:    time.Second,
		FloodWindow:    10 * time.Second,
		FloodThreshold: 5,
		PenaltyBase:    30 * time.Second,
		PenaltyCap:     900 * time.Second,
		IdleTTL:        time.Hour,
	}
}

// Guard composes the pacing gate and the flood gate behind one lock, so an
// admission check and a sweep can't race on the same user's state.
type Guard struct {
	cfg Config

	mu     sync.Mutex
	pacing map[int64]time.Time
	flood  map[int64]*floodState
}

// floodState is the per-user penalty machine: tracking while the window
// fills, penalized until the expiry passes, then tracking again.
type floodState struct {
	window       []time.Time
	penaltyUntil time.Time
	lastPenalty  time.Duration
}

func NewGuard(cfg Config) *Guard {
	return &Guard{
		cfg:    cfg,
		pacing: make(map[int64]time.Time),
		flood:  make(map[int64]*floodState),
	}
}

// Admit decides whether the user's action may proceed. Actions without a
// resolvable identity (userID == 0) are always admitted; the guard can't
// rate-limit what it can't identify.
func (g *Guard) Admit(userID int64, now time.Time) Decision {
	if userID == 0 {
		return Decision{Allowed: true}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.pacing[userID]; ok {
		if elapsed := now.Sub(last); elapsed < g.cfg.MinInterval {
			return Decision{
				Reason: ReasonPacing,
				Wait:   g.cfg.MinInterval - elapsed,
			}
		}
	}
	g.pacing[userID] = now

	state, ok := g.flood[userID]
	if !ok {
		state = &floodState{}
		g.flood[userID] = state
	}
	if now.Before(state.penaltyUntil) {
		return Decision{
			Reason: ReasonFlood,
			Wait:   state.penaltyUntil.Sub(now),
		}
	}

	cutoff := now.Add(-g.cfg.FloodWindow)
	kept := state.window[:0]
	for _, t := range state.window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	state.window = append(kept, now)

	if len(state.window) > g.cfg.FloodThreshold {
		penalty := g.cfg.PenaltyBase
		if state.lastPenalty > 0 {
			penalty = state.lastPenalty * 3
			if penalty > g.cfg.PenaltyCap {
				penalty = g.cfg.PenaltyCap
			}
		}
		state.penaltyUntil = now.Add(penalty)
		state.lastPenalty = penalty
		state.window = nil
		return Decision{
			Reason: ReasonFlood,
			Wait:   penalty,
		}
	}

	return Decision{Allowed: true}
}

// Sweep drops state for users who went quiet: pacing entries idle past
// IdleTTL and flood entries that are neither penalized nor inside a live
// window. It takes the same lock as Admit, so it never evicts a user
// mid-update.
func (g *Guard) Sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for userID, last := range g.pacing {
		if now.Sub(last) <= g.cfg.IdleTTL {
			continue
		}
		if state, ok := g.flood[userID]; ok && g.stillActive(state, now) {
			continue
		}
		delete(g.pacing, userID)
	}
	for userID, state := range g.flood {
		if !g.stillActive(state, now) {
			delete(g.flood, userID)
		}
	}
}

func (g *Guard) stillActive(state *floodState, now time.Time) bool {
	if now.Before(state.penaltyUntil) {
		return true
	}
	cutoff := now.Add(-g.cfg.FloodWindow)
	for _, t := range state.window {
		if t.After(cutoff) {
			return true
		}
	}
	return false
}
