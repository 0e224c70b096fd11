package main

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"memtrack/internal/format"
)

// samplerLoop keeps the snapshot cache warm from the background so a slow OS
// enumeration never blocks a classification pass.
func samplerLoop(ctx context.Context, app *AppContext) {
	ticker := time.NewTicker(time.Duration(app.Config.Intervals.CacheTTLSeconds) * time.Second)
	defer ticker.Stop()

	app.Cache.RefreshAsync()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.Cache.RefreshAsync()
		}
	}
}

// classifierLoop drives the periodic classification passes. Each pass is
// guarded: an unexpected panic is logged and the next cycle still fires.
func classifierLoop(ctx context.Context, app *AppContext) {
	ticker := time.NewTicker(time.Duration(app.Config.Intervals.ClassifySeconds) * time.Second)
	defer ticker.Stop()

	runGuardedPass(app)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runGuardedPass(app)
		}
	}
}

func runGuardedPass(app *AppContext) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Classification pass panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	app.runClassification()
}

// statusLoop periodically logs the memory efficiency gauge and a summary of
// the current result tables.
func statusLoop(ctx context.Context, app *AppContext) {
	ticker := time.NewTicker(time.Duration(app.Config.Intervals.StatusSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logStatus(app)
		}
	}
}

func logStatus(app *AppContext) {
	freePercent, status := memoryEfficiency()
	slog.Info("Memory efficiency",
		"free", format.MakeProgressBar(freePercent),
		"free_percent", freePercent,
		"status", status,
	)

	usage, ready := app.UsageResults()
	if !ready {
		return
	}
	flagged, _ := app.FlaggedResults()
	slog.Info("Classification summary",
		"usage_rows", len(usage),
		"flagged_rows", len(flagged),
		"usage_threshold_mb", app.Usage.MB(),
		"flagged_threshold_mb", app.Flagged.MB(),
	)

	for i, row := range usage {
		if i >= 5 {
			break
		}
		slog.Info("Top consumer",
			"name", format.Truncate(row.Name, 40),
			"memory", format.FormatMB(row.MemoryMB),
			"severity", row.Severity,
		)
	}
}
