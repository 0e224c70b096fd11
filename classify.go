package main

import (
	"sort"

	"memtrack/internal/recommend"
)

// Notification titles, one per table.
const (
	usageNotificationTitle   = "High Memory Usage Detected"
	flaggedNotificationTitle = "Suspicious Memory Usage Detected"
)

// flaggedReason is the fixed reason column for flagged rows.
const flaggedReason = "High Memory Usage"

// Classifier turns a snapshot into the usage and flagged result sets. The
// thresholds are read fresh on every pass so operator edits take effect on
// the next cycle without restarts.
type Classifier struct {
	usage   *Threshold
	flagged *Threshold
	notify  Notifier

	// Per-table notification switches, owned by the caller.
	NotifyUsage   bool
	NotifyFlagged bool
}

// NewClassifier wires the classifier to its thresholds and alert sink.
func NewClassifier(usage, flagged *Threshold, notify Notifier) *Classifier {
	return &Classifier{usage: usage, flagged: flagged, notify: notify}
}

// Classify aggregates the snapshot by name and filters each application into
// the usage set (memory >= usage threshold) and the flagged set (memory >=
// flagged threshold). The filters are independent; an application may appear
// in both. Results are ordered by memory descending, ties by name.
//
// When a table's notifications are enabled, exactly one notification per
// application per table is emitted for this cycle. De-duplication is local
// to the cycle: an application still above threshold re-notifies next time.
func (c *Classifier) Classify(snap Snapshot) (usage, flagged []ClassificationResult) {
	usageMB := c.usage.MB()
	flaggedMB := c.flagged.MB()
	totalMB := totalMemoryMB()

	aggregated := aggregateByName(snap.Records)

	notifiedUsage := make(map[string]struct{})
	notifiedFlagged := make(map[string]struct{})

	for name, memory := range aggregated {
		if memory < usageMB && memory < flaggedMB {
			continue
		}

		advice := recommend.Advice(name, memory, usageMB, flaggedMB, totalMB)
		severity := recommend.Severity(memory, usageMB, flaggedMB, totalMB)

		if memory >= usageMB {
			usage = append(usage, ClassificationResult{
				Name:           name,
				MemoryMB:       memory,
				Recommendation: advice,
				Severity:       severity,
			})
			if c.NotifyUsage {
				if _, done := notifiedUsage[name]; !done {
					safeNotify(c.notify, usageNotificationTitle, highMemoryMessage(name, memory, advice))
					notifiedUsage[name] = struct{}{}
				}
			}
		}

		if memory >= flaggedMB {
			flagged = append(flagged, ClassificationResult{
				Name:           name,
				MemoryMB:       memory,
				Recommendation: advice,
				Severity:       severity,
				Reason:         flaggedReason,
			})
			if c.NotifyFlagged {
				if _, done := notifiedFlagged[name]; !done {
					safeNotify(c.notify, flaggedNotificationTitle, highMemoryMessage(name, memory, advice))
					notifiedFlagged[name] = struct{}{}
				}
			}
		}
	}

	sortResults(usage)
	sortResults(flagged)
	return usage, flagged
}

func sortResults(results []ClassificationResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].MemoryMB != results[j].MemoryMB {
			return results[i].MemoryMB > results[j].MemoryMB
		}
		return results[i].Name < results[j].Name
	})
}
