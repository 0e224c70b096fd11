// Package recommend maps an application's aggregated memory usage to a
// human-readable recommendation and a severity tag.
package recommend

import "strings"

// Severity tags, from worst to best.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityHigh     = "high"
	SeverityModerate = "moderate"
	SeverityNormal   = "normal"
)

var severityPrefixes = map[string]string{
	SeverityCritical: "CRITICAL: Process consuming over 50% of system memory. ",
	SeverityWarning:  "WARNING: High memory usage detected. ",
	SeverityHigh:     "High Usage: ",
	SeverityModerate: "Moderate Usage: ",
	SeverityNormal:   "Usage is within acceptable limits. ",
}

// category is one keyword-matched application class with its action advice.
// Categories are checked in order; the first match wins.
type category struct {
	keywords []string
	advice   string
}

var categories = []category{
	{[]string{"chrome", "firefox", "safari", "edge", "opera", "brave"},
		"Consider closing unused tabs or restarting the browser."},
	{[]string{"code", "pycharm", "intellij", "eclipse", "visual studio"},
		"Close unused projects or restart the IDE to free up resources."},
	{[]string{"spotify", "vlc", "netflix", "youtube", "prime"},
		"Pause the application if not actively using it."},
	{[]string{"zoom", "teams", "slack", "discord", "skype"},
		"Close unused calls or chats to save resources."},
	{[]string{"game", "steam", "epic", "blizzard", "riot"},
		"Close background apps to improve game performance."},
	{[]string{"onedrive", "dropbox", "google drive", "icloud"},
		"Pause syncing to free up memory."},
	{[]string{"word", "excel", "powerpoint", "outlook", "office"},
		"Close unused documents or spreadsheets."},
	{[]string{"premiere", "photoshop", "after effects", "final cut", "lightroom", "gimp"},
		"Close unused projects or export completed work to free up resources."},
}

var systemKeywords = []string{"svchost", "system", "winlogon", "lsass"}

const systemAdvice = "System Process: Normal Windows service. Leave running."

// Severity classifies memory usage against the thresholds. The bands are
// mutually exclusive and evaluated worst-first.
func Severity(memoryMB, usageThresholdMB, flaggedThresholdMB, totalMemoryMB float64) string {
	switch {
	case totalMemoryMB > 0 && memoryMB/totalMemoryMB*100 > 50:
		return SeverityCritical
	case memoryMB > flaggedThresholdMB:
		return SeverityWarning
	case memoryMB > usageThresholdMB*3:
		return SeverityHigh
	case memoryMB > usageThresholdMB*2:
		return SeverityModerate
	default:
		return SeverityNormal
	}
}

// Advice builds the full recommendation string: severity prefix plus a
// keyword-matched action suffix. Known system processes short-circuit to a
// fixed message with no prefix.
func Advice(name string, memoryMB, usageThresholdMB, flaggedThresholdMB, totalMemoryMB float64) string {
	lower := strings.ToLower(name)
	prefix := severityPrefixes[Severity(memoryMB, usageThresholdMB, flaggedThresholdMB, totalMemoryMB)]

	for _, c := range categories {
		if matchAny(lower, c.keywords) {
			return prefix + c.advice
		}
	}

	// Checked after the application categories so that e.g. a game launcher
	// whose name also contains "system" keeps its category advice.
	if matchAny(lower, systemKeywords) {
		return systemAdvice
	}

	if memoryMB > usageThresholdMB*2 {
		return prefix + "Restart the application to release unused memory."
	}
	return prefix + "Consider closing the application if not actively using it."
}

func matchAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
