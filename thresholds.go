package main

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrInvalidThreshold is reported when an operator edit is not a positive,
// finite number. The stored threshold is left untouched.
var ErrInvalidThreshold = errors.New("threshold must be greater than 0")

// ThresholdKind selects the default formula for a threshold.
type ThresholdKind int

const (
	// UsageThreshold gates the usage table: max(200 MB, 2% of total memory).
	UsageThreshold ThresholdKind = iota
	// FlaggedThreshold gates the flagged table: max(1500 MB, 15% of total memory).
	FlaggedThreshold
)

// defaultThresholdMB computes the default for a kind against live total
// physical memory.
func defaultThresholdMB(kind ThresholdKind) float64 {
	total := totalMemoryMB()
	if kind == FlaggedThreshold {
		return math.Max(1500, total*0.15)
	}
	return math.Max(200, total*0.02)
}

// mbToPercent converts a MB value to a percentage of total physical memory,
// queried at call time.
func mbToPercent(mb float64) float64 {
	total := totalMemoryMB()
	if total <= 0 {
		return 0
	}
	return mb / total * 100
}

// percentToMB converts a percentage of total physical memory to MB, queried
// at call time.
func percentToMB(percent float64) float64 {
	return percent / 100 * totalMemoryMB()
}

// Threshold holds one operator-configurable memory threshold. The MB value is
// canonical; the percent representation is derived on read so it tracks the
// machine's current total memory.
type Threshold struct {
	mu      sync.RWMutex
	kind    ThresholdKind
	valueMB float64
}

// NewThreshold builds a threshold initialized to its kind's default.
func NewThreshold(kind ThresholdKind) *Threshold {
	return &Threshold{kind: kind, valueMB: defaultThresholdMB(kind)}
}

// MB returns the threshold in MB.
func (t *Threshold) MB() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.valueMB
}

// Percent returns the threshold as a percentage of live total memory.
func (t *Threshold) Percent() float64 {
	return mbToPercent(t.MB())
}

// SetFromMB stores a new value edited in the MB field.
func (t *Threshold) SetFromMB(mb float64) error {
	if !validThresholdValue(mb) {
		return ErrInvalidThreshold
	}
	t.mu.Lock()
	t.valueMB = mb
	t.mu.Unlock()
	return nil
}

// SetFromPercent stores a new value edited in the percent field. The MB
// equivalent is computed against total memory at edit time and becomes
// canonical.
func (t *Threshold) SetFromPercent(percent float64) error {
	if !validThresholdValue(percent) {
		return ErrInvalidThreshold
	}
	mb := percentToMB(percent)
	if !validThresholdValue(mb) {
		return ErrInvalidThreshold
	}
	t.mu.Lock()
	t.valueMB = mb
	t.mu.Unlock()
	return nil
}

// ResetToDefault recomputes the kind's default formula against live total
// memory and stores it.
func (t *Threshold) ResetToDefault() {
	v := defaultThresholdMB(t.kind)
	t.mu.Lock()
	t.valueMB = v
	t.mu.Unlock()
}

func validThresholdValue(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// debouncer delays a recompute until rapid successive edits settle, so a
// threshold typed digit by digit does not trigger a classification pass per
// keystroke. The callback runs on a timer goroutine.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Trigger schedules fn after the delay, replacing any pending schedule.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
