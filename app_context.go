package main

import (
	"errors"
	"sync"
	"time"
)

// ResultTable names one of the two classification tables.
type ResultTable string

const (
	TableUsage   ResultTable = "usage"
	TableFlagged ResultTable = "flagged"
)

// ThresholdUnit names which representation an operator edited.
type ThresholdUnit string

const (
	UnitMB      ThresholdUnit = "mb"
	UnitPercent ThresholdUnit = "percent"
)

var errUnknownTable = errors.New("unknown result table")

// ThreadSafeResults stores the most recent classification cycle's output for
// the presentation layer to re-fetch.
type ThreadSafeResults struct {
	mu      sync.RWMutex
	usage   []ClassificationResult
	flagged []ClassificationResult
	ready   bool
}

func (r *ThreadSafeResults) Set(usage, flagged []ClassificationResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage = usage
	r.flagged = flagged
	r.ready = true
}

func (r *ThreadSafeResults) Usage() ([]ClassificationResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.usage, r.ready
}

func (r *ThreadSafeResults) Flagged() ([]ClassificationResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flagged, r.ready
}

// AppContext holds the application services and the facade the presentation
// layer calls into. It owns no business state of its own beyond the last
// cycle's results.
type AppContext struct {
	Config  *Config
	Cache   *SnapshotCache
	Usage   *Threshold
	Flagged *Threshold

	Classifier *Classifier
	Actions    *ActionService
	Results    *ThreadSafeResults

	debounce *debouncer
}

// InitApp wires the services from configuration.
func InitApp(cfg *Config, notify Notifier) *AppContext {
	cache := NewSnapshotCache(
		time.Duration(cfg.Intervals.CacheTTLSeconds)*time.Second,
		cfg.Sampling.Workers,
		sampleProcesses,
	)

	usage := NewThreshold(UsageThreshold)
	flagged := NewThreshold(FlaggedThreshold)
	if cfg.Thresholds.UsageMB > 0 {
		_ = usage.SetFromMB(cfg.Thresholds.UsageMB)
	}
	if cfg.Thresholds.FlaggedMB > 0 {
		_ = flagged.SetFromMB(cfg.Thresholds.FlaggedMB)
	}

	classifier := NewClassifier(usage, flagged, notify)
	classifier.NotifyUsage = cfg.Notifications.Usage.Enabled
	classifier.NotifyFlagged = cfg.Notifications.Flagged.Enabled

	return &AppContext{
		Config:     cfg,
		Cache:      cache,
		Usage:      usage,
		Flagged:    flagged,
		Classifier: classifier,
		Actions:    NewActionService(cache, time.Duration(cfg.Kill.TimeoutSeconds)*time.Second),
		Results:    &ThreadSafeResults{},
		debounce:   newDebouncer(time.Duration(cfg.Intervals.DebounceMillis) * time.Millisecond),
	}
}

// runClassification executes one classification pass against the freshest
// snapshot and publishes the results.
func (app *AppContext) runClassification() {
	snap := app.Cache.Get(time.Now())
	usage, flagged := app.Classifier.Classify(snap)
	app.Results.Set(usage, flagged)
}

// UsageResults returns the usage table rows from the last completed cycle.
func (app *AppContext) UsageResults() ([]ClassificationResult, bool) {
	return app.Results.Usage()
}

// FlaggedResults returns the flagged table rows from the last completed cycle.
func (app *AppContext) FlaggedResults() ([]ClassificationResult, bool) {
	return app.Results.Flagged()
}

func (app *AppContext) threshold(table ResultTable) (*Threshold, error) {
	switch table {
	case TableUsage:
		return app.Usage, nil
	case TableFlagged:
		return app.Flagged, nil
	default:
		return nil, errUnknownTable
	}
}

// SetThreshold applies an operator edit to one table's threshold. An invalid
// value leaves the stored threshold untouched and is reported back for the
// caller to re-display the last valid value. Valid edits schedule a debounced
// re-classification so rapid keystrokes produce one pass.
func (app *AppContext) SetThreshold(table ResultTable, unit ThresholdUnit, value float64) error {
	t, err := app.threshold(table)
	if err != nil {
		return err
	}

	if unit == UnitPercent {
		err = t.SetFromPercent(value)
	} else {
		err = t.SetFromMB(value)
	}
	if err != nil {
		return err
	}

	app.debounce.Trigger(app.runClassification)
	return nil
}

// ResetThreshold restores one table's threshold to its computed default and
// schedules a re-classification.
func (app *AppContext) ResetThreshold(table ResultTable) error {
	t, err := app.threshold(table)
	if err != nil {
		return err
	}
	t.ResetToDefault()
	app.debounce.Trigger(app.runClassification)
	return nil
}

// RequestKill terminates every process with the given application name and
// reports the per-process outcome.
func (app *AppContext) RequestKill(name string) (ActionOutcome, error) {
	return app.Actions.TerminateByName(name)
}

// RequestOpenLocation resolves the executable directory for a PID from the
// current snapshot.
func (app *AppContext) RequestOpenLocation(pid int32) (string, error) {
	snap := app.Cache.Get(time.Now())
	for _, rec := range snap.Records {
		if rec.PID == pid {
			return app.Actions.ResolveExecutableLocation(rec)
		}
	}
	return "", ErrProcessGone
}

// RequestDetails fetches a live detail record for a PID.
func (app *AppContext) RequestDetails(pid int32) (ProcessRecord, error) {
	return app.Actions.SnapshotDetail(pid)
}

// Close releases timers held by the context.
func (app *AppContext) Close() {
	app.debounce.Stop()
}
