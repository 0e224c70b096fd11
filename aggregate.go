package main

// aggregateByName sums resident memory in MB across all records sharing a
// process name, case-sensitive exact match. Records without readable memory
// info are skipped; they must not abort aggregation of the rest.
func aggregateByName(records []ProcessRecord) map[string]float64 {
	aggregated := make(map[string]float64)
	for _, rec := range records {
		if !rec.HasMemory {
			continue
		}
		aggregated[rec.Name] += rec.MemoryMB()
	}
	return aggregated
}
