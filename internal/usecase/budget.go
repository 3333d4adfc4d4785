package usecase

import "sync/atomic"

// Budget thresholds. Leagues stop being queued at the soft limit so
// the remaining calls can finish players already in flight; players
// stop only when the ceiling is fully spent.
const softLimitRatio = 0.95

// CallBudget counts provider calls against a daily ceiling. Every
// attempted HTTP request is recorded, including retries, so the
// counter tracks what the provider bills rather than what succeeded.
type CallBudget struct {
	ceiling int64
	calls   atomic.Int64
}

func NewCallBudget(ceiling int64) *CallBudget {
	if ceiling < 0 {
		ceiling = 0
	}
	return &CallBudget{ceiling: ceiling}
}

// RecordCall adds one attempted provider call.
func (b *CallBudget) RecordCall() {
	b.calls.Add(1)
}

// Reset zeroes the counter for a fresh run.
func (b *CallBudget) Reset() {
	b.calls.Store(0)
}

func (b *CallBudget) Used() int64 {
	return b.calls.Load()
}

func (b *CallBudget) Ceiling() int64 {
	return b.ceiling
}

// SoftLimitReached reports whether new leagues should stop being
// processed. A zero ceiling disables budgeting.
func (b *CallBudget) SoftLimitReached() bool {
	if b.ceiling <= 0 {
		return false
	}
	return float64(b.calls.Load()) >= float64(b.ceiling)*softLimitRatio
}

// Exhausted reports whether new players should stop being processed.
func (b *CallBudget) Exhausted() bool {
	if b.ceiling <= 0 {
		return false
	}
	return b.calls.Load() >= b.ceiling
}
