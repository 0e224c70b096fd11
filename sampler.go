package main

import (
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Process names that are meaningless to surface to the operator. Mirrors the
// reserved-PID exclusion below: kernel bookkeeping and core Windows services.
var criticalNames = map[string]struct{}{
	"System":       {},
	"Idle":         {},
	"svchost.exe":  {},
	"winlogon.exe": {},
	"services.exe": {},
	"csrss.exe":    {},
	"smss.exe":     {},
	"lsass.exe":    {},
}

// Reserved low-numbered kernel PIDs (0 is the idle/swapper slot, 4 is the
// Windows System process).
var reservedPIDs = map[int32]struct{}{0: {}, 4: {}}

// virtualMemory is the single seam to the OS memory facts. Tests swap it.
var virtualMemory = func() (total, available uint64, err error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return v.Total, v.Available, nil
}

// totalMemoryMB queries live total physical memory. Never cached, so
// conversions stay correct across memory hot-add/remove.
func totalMemoryMB() float64 {
	total, _, err := virtualMemory()
	if err != nil {
		return 0
	}
	return float64(total) / 1024 / 1024
}

// sampleProcesses enumerates the OS process table and builds one record per
// accessible process. A process that vanishes or denies access mid-read is
// omitted; neither condition fails the sample.
func sampleProcesses() ([]ProcessRecord, error) {
	ps, err := process.Processes()
	if err != nil {
		return nil, err
	}

	records := make([]ProcessRecord, 0, len(ps))
	for _, p := range ps {
		rec, ok := buildRecord(p)
		if !ok {
			continue
		}
		if isSystemCritical(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// buildRecord reads the attributes of one process. Name is mandatory; the
// rest are optional and left zero-valued when unreadable.
func buildRecord(p *process.Process) (ProcessRecord, bool) {
	name, err := p.Name()
	if err != nil {
		// Vanished or access denied; either way the record is dropped.
		return ProcessRecord{}, false
	}

	rec := ProcessRecord{PID: p.Pid, Name: name}

	if mi, err := p.MemoryInfo(); err == nil && mi != nil {
		rec.ResidentBytes = mi.RSS
		rec.HasMemory = true
	}
	if exe, err := p.Exe(); err == nil {
		rec.ExePath = exe
	}
	if st, err := p.Status(); err == nil && len(st) > 0 {
		rec.Status = st[0]
	}
	if n, err := p.NumThreads(); err == nil {
		rec.Threads = n
	}
	if kids, err := p.Children(); err == nil {
		rec.Children = len(kids)
	}
	if cp, err := p.CPUPercent(); err == nil {
		rec.CPUPercent = cp
	}

	return rec, true
}

// isSystemCritical applies the fixed exclusion policy: records with no name,
// no resolvable executable path, a reserved kernel PID, or a well-known
// critical service name never enter a snapshot.
func isSystemCritical(rec ProcessRecord) bool {
	if rec.Name == "" || rec.ExePath == "" {
		return true
	}
	if _, ok := reservedPIDs[rec.PID]; ok {
		return true
	}
	_, ok := criticalNames[rec.Name]
	return ok
}

// newSnapshot stamps a record set as one consistent capture.
func newSnapshot(records []ProcessRecord, taken time.Time) Snapshot {
	return Snapshot{Records: records, Taken: taken}
}
