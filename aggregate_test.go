package main

import (
	"math"
	"testing"
)

const miB = 1024 * 1024

func TestAggregateByNameSumsPerName(t *testing.T) {
	records := []ProcessRecord{
		{PID: 10, Name: "chrome.exe", ResidentBytes: 100 * miB, HasMemory: true},
		{PID: 11, Name: "chrome.exe", ResidentBytes: 250 * miB, HasMemory: true},
		{PID: 12, Name: "chrome.exe", ResidentBytes: 50 * miB, HasMemory: true},
		{PID: 20, Name: "code", ResidentBytes: 300 * miB, HasMemory: true},
		{PID: 30, Name: "Code", ResidentBytes: 80 * miB, HasMemory: true},
	}

	got := aggregateByName(records)

	if len(got) != 3 {
		t.Fatalf("expected 3 aggregated names, got %d: %v", len(got), got)
	}
	if math.Abs(got["chrome.exe"]-400) > 1e-9 {
		t.Fatalf("chrome.exe = %.2f MB, want 400", got["chrome.exe"])
	}
	// Case-sensitive exact match: "code" and "Code" stay separate.
	if math.Abs(got["code"]-300) > 1e-9 || math.Abs(got["Code"]-80) > 1e-9 {
		t.Fatalf("case-sensitive aggregation broken: %v", got)
	}
}

func TestAggregateByNameSkipsRecordsWithoutMemory(t *testing.T) {
	records := []ProcessRecord{
		{PID: 1, Name: "app", ResidentBytes: 100 * miB, HasMemory: true},
		{PID: 2, Name: "app", HasMemory: false},
		{PID: 3, Name: "other", HasMemory: false},
	}

	got := aggregateByName(records)

	if math.Abs(got["app"]-100) > 1e-9 {
		t.Fatalf("app = %.2f MB, want 100 (unreadable record must be skipped)", got["app"])
	}
	if _, ok := got["other"]; ok {
		t.Fatalf("name with no readable memory should not appear: %v", got)
	}
}

func TestAggregateByNameEmptySnapshot(t *testing.T) {
	if got := aggregateByName(nil); len(got) != 0 {
		t.Fatalf("expected empty aggregation, got %v", got)
	}
}
