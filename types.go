package main

import "time"

// ProcessRecord is an immutable view of one OS process at sample time.
// Optional attributes carry an availability flag instead of a zero value
// so callers can tell "0 MB" from "unreadable".
type ProcessRecord struct {
	PID           int32
	Name          string
	ResidentBytes uint64
	HasMemory     bool
	ExePath       string
	Status        string
	Threads       int32
	Children      int
	CPUPercent    float64
}

// MemoryMB returns the resident set in MB.
func (r ProcessRecord) MemoryMB() float64 {
	return float64(r.ResidentBytes) / 1024 / 1024
}

// Snapshot is the process list captured at a single instant. It is replaced
// wholesale on refresh, never mutated in place.
type Snapshot struct {
	Records []ProcessRecord
	Taken   time.Time
}

// ClassificationResult is one row of the usage or flagged table.
type ClassificationResult struct {
	Name           string
	MemoryMB       float64
	Recommendation string
	Severity       string
	Reason         string // flagged table only
}

// ActionFailure records one process a kill action could not terminate.
type ActionFailure struct {
	PID    int32
	Name   string
	Reason string
}

// ActionOutcome reports the result of a terminate-by-name action.
// A process that disappears during the wait counts as terminated.
type ActionOutcome struct {
	Terminated []ProcessRecord
	Failed     []ActionFailure
}

// ProcessDetail is the live detail view for every process sharing a name,
// plus the aggregate total.
type ProcessDetail struct {
	Name          string
	TotalMemoryMB float64
	Processes     []ProcessRecord
}
