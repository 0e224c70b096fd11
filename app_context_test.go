package main

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestApp(t *testing.T, records []ProcessRecord) *AppContext {
	t.Helper()
	withTotalMemoryMB(t, 10000)

	cfg := defaultConfigTemplate()
	sanitizeConfig(&cfg)
	cfg.Intervals.DebounceMillis = 100

	app := InitApp(&cfg, &fakeNotifier{})
	t.Cleanup(app.Close)

	// Swap the OS sampler for a canned record set.
	app.Cache = NewSnapshotCache(
		time.Duration(cfg.Intervals.CacheTTLSeconds)*time.Second,
		cfg.Sampling.Workers,
		func() ([]ProcessRecord, error) { return records, nil },
	)
	app.Actions = NewActionService(app.Cache, time.Duration(cfg.Kill.TimeoutSeconds)*time.Second)
	return app
}

func TestAppRunClassificationPublishesResults(t *testing.T) {
	app := newTestApp(t, []ProcessRecord{
		{PID: 1, Name: "chrome.exe", ResidentBytes: 1600 * miB, HasMemory: true},
		{PID: 2, Name: "tiny", ResidentBytes: 10 * miB, HasMemory: true},
	})

	if _, ready := app.UsageResults(); ready {
		t.Fatalf("results must not be ready before the first pass")
	}

	app.runClassification()

	usage, ready := app.UsageResults()
	if !ready || len(usage) != 1 || usage[0].Name != "chrome.exe" {
		t.Fatalf("usage results = %+v (ready=%v)", usage, ready)
	}
	flagged, _ := app.FlaggedResults()
	if len(flagged) != 1 {
		t.Fatalf("flagged results = %+v", flagged)
	}
}

func TestAppSetThresholdValidatesAndReclassifies(t *testing.T) {
	app := newTestApp(t, []ProcessRecord{
		{PID: 1, Name: "code", ResidentBytes: 450 * miB, HasMemory: true},
	})
	app.runClassification()

	if usage, _ := app.UsageResults(); len(usage) != 1 {
		t.Fatalf("code should exceed the default usage threshold: %+v", usage)
	}

	// Raise the threshold above code's usage; the debounced pass drops it.
	if err := app.SetThreshold(TableUsage, UnitMB, 1000); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		usage, _ := app.UsageResults()
		if len(usage) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("debounced re-classification never ran, usage = %+v", usage)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAppSetThresholdRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t, nil)
	before := app.Usage.MB()

	if err := app.SetThreshold(TableUsage, UnitMB, -5); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("err = %v, want ErrInvalidThreshold", err)
	}
	if app.Usage.MB() != before {
		t.Fatalf("invalid edit must not change the stored threshold")
	}

	if err := app.SetThreshold("bogus", UnitMB, 100); !errors.Is(err, errUnknownTable) {
		t.Fatalf("err = %v, want errUnknownTable", err)
	}
}

func TestAppSetThresholdPercentUnit(t *testing.T) {
	app := newTestApp(t, nil)

	if err := app.SetThreshold(TableFlagged, UnitPercent, 20); err != nil {
		t.Fatalf("SetThreshold percent: %v", err)
	}
	if got := app.Flagged.MB(); math.Abs(got-2000) > 1e-9 {
		t.Fatalf("20%% of 10000 MB = %v, want 2000", got)
	}
}

func TestAppResetThreshold(t *testing.T) {
	app := newTestApp(t, nil)

	if err := app.SetThreshold(TableUsage, UnitMB, 4242); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}
	if err := app.ResetThreshold(TableUsage); err != nil {
		t.Fatalf("ResetThreshold: %v", err)
	}
	// max(200, 2% of 10000) = 200.
	if got := app.Usage.MB(); got != 200 {
		t.Fatalf("usage reset = %v, want 200", got)
	}
}

func TestAppRequestOpenLocationUnknownPID(t *testing.T) {
	app := newTestApp(t, []ProcessRecord{
		{PID: 1, Name: "app", ExePath: "/nonexistent/app", HasMemory: true},
	})

	if _, err := app.RequestOpenLocation(999); !errors.Is(err, ErrProcessGone) {
		t.Fatalf("err = %v, want ErrProcessGone for a PID not in the snapshot", err)
	}
}

func TestAppConfigThresholdOverrides(t *testing.T) {
	withTotalMemoryMB(t, 10000)

	cfg := defaultConfigTemplate()
	sanitizeConfig(&cfg)
	cfg.Thresholds.UsageMB = 333
	cfg.Thresholds.FlaggedMB = 2222

	app := InitApp(&cfg, nil)
	t.Cleanup(app.Close)

	if app.Usage.MB() != 333 || app.Flagged.MB() != 2222 {
		t.Fatalf("config overrides not applied: usage=%v flagged=%v", app.Usage.MB(), app.Flagged.MB())
	}
}

func TestGuardedPassRecoversPanic(t *testing.T) {
	app := newTestApp(t, nil)
	app.Classifier = nil // force a nil-pointer panic inside the pass

	// Must not propagate; the scheduling loop keeps firing.
	runGuardedPass(app)
}
