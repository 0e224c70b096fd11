package main

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	persistentLogFile *os.File
	loggingMu         sync.Mutex
)

func defaultPersistentLogPath() string {
	logPath := os.Getenv("MEMTRACK_LOG_FILE")
	if logPath == "" {
		logPath = "memtrack.log"
	}
	return logPath
}

// setupLogger initializes the structured logger: stdout plus an append-only
// log file when one can be opened.
func setupLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()

	logPath := defaultPersistentLogPath()
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		logFile = nil
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var out io.Writer = os.Stdout
	if logFile != nil {
		persistentLogFile = logFile
		out = io.MultiWriter(os.Stdout, logFile)
	}

	handler := slog.NewTextHandler(out, opts)
	logger := slog.New(handler).With("app", "memtrack")
	slog.SetDefault(logger)

	if logFile != nil {
		slog.Info("Persistent logging enabled", "file", logPath)
	} else {
		slog.Error("Persistent logging disabled: failed to open log file", "file", logPath)
	}
}

func closeLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}
