package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatMB(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.00 MB"},
		{"fractional", 123.456, "123.46 MB"},
		{"large", 6000, "6000.00 MB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatMB(tc.in); got != tc.want {
				t.Fatalf("FormatMB(%f) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	miB := uint64(1024 * 1024)
	cases := []struct {
		name  string
		input uint64
		want  string
	}{
		{"zero", 0, "0M"},
		{"oneMiB", miB, "1M"},
		{"twoGiB", miB * 2048, "2.0G"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatBytes(tc.input); got != tc.want {
				t.Fatalf("FormatBytes(%d) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 90 * time.Second, "1m30s"},
		{"hours", 1 * time.Hour, "1h0m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.in); got != tc.want {
				t.Fatalf("FormatDuration(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMakeProgressBar(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, strings.Repeat("░", 10)},
		{"five", 5, "█" + strings.Repeat("░", 9)},
		{"hundred", 100, strings.Repeat("█", 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MakeProgressBar(tc.in); got != tc.want {
				t.Fatalf("MakeProgressBar(%.1f) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate(short) = %q", got)
	}
	if got := Truncate("a-very-long-process-name", 10); got != "a-very-lo~" {
		t.Fatalf("Truncate(long) = %q", got)
	}
}
