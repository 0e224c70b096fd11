package main

// Efficiency status labels by free-memory percentage.
const (
	efficiencyGood = "Good"
	efficiencyFair = "Fair"
	efficiencyPoor = "Poor"
)

// memoryEfficiency reports the free share of physical memory and a coarse
// status: Good above 60% free, Fair above 30%, Poor otherwise.
func memoryEfficiency() (freePercent float64, status string) {
	total, available, err := virtualMemory()
	if err != nil || total == 0 {
		return 0, efficiencyPoor
	}

	freePercent = float64(available) / float64(total) * 100
	switch {
	case freePercent > 60:
		status = efficiencyGood
	case freePercent > 30:
		status = efficiencyFair
	default:
		status = efficiencyPoor
	}
	return freePercent, status
}
