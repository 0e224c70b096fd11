package main

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Failure reasons reported per process in an ActionOutcome.
const (
	failReasonAccessDenied = "access denied"
	failReasonTimeout      = "timeout expired"
)

var (
	// ErrNoMatchingProcess means no live process carried the requested name
	// at call time. Informational, not fatal.
	ErrNoMatchingProcess = errors.New("no matching process")

	// ErrExecutableNotFound means the record has no executable path or the
	// path no longer exists on disk.
	ErrExecutableNotFound = errors.New("executable path not found")

	// ErrProcessGone means the process exited between selection and detail
	// fetch. Expected and benign.
	ErrProcessGone = errors.New("process no longer exists")
)

// procHandle is the subset of OS process control the action service needs.
// The real implementation wraps gopsutil; tests substitute fakes.
type procHandle interface {
	ProcPID() int32
	ProcName() (string, error)
	Terminate() error
	IsRunning() (bool, error)
}

type gopsHandle struct{ p *process.Process }

func (g gopsHandle) ProcPID() int32            { return g.p.Pid }
func (g gopsHandle) ProcName() (string, error) { return g.p.Name() }
func (g gopsHandle) Terminate() error          { return g.p.Terminate() }
func (g gopsHandle) IsRunning() (bool, error)  { return g.p.IsRunning() }

func listProcHandles() ([]procHandle, error) {
	ps, err := process.Processes()
	if err != nil {
		return nil, err
	}
	handles := make([]procHandle, 0, len(ps))
	for _, p := range ps {
		handles = append(handles, gopsHandle{p: p})
	}
	return handles, nil
}

func fetchProcessDetail(pid int32) (ProcessRecord, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return ProcessRecord{}, ErrProcessGone
	}
	rec, ok := buildRecord(p)
	if !ok {
		return ProcessRecord{}, ErrProcessGone
	}
	return rec, nil
}

// ActionService executes operator-triggered process actions. Kill actions are
// partial-failure tolerant: one stubborn process never aborts the attempts on
// the remaining matches.
type ActionService struct {
	cache *SnapshotCache

	list   func() ([]procHandle, error)
	detail func(pid int32) (ProcessRecord, error)

	killWait     time.Duration
	pollInterval time.Duration
}

// NewActionService builds the service with the OS-backed process table.
func NewActionService(cache *SnapshotCache, killWait time.Duration) *ActionService {
	return &ActionService{
		cache:        cache,
		list:         listProcHandles,
		detail:       fetchProcessDetail,
		killWait:     killWait,
		pollInterval: 100 * time.Millisecond,
	}
}

// TerminateByName gracefully terminates every live process with the given
// name and waits up to the kill timeout for each to exit. A process that
// disappears during the wait counts as terminated. The cache is
// force-refreshed before returning so the next classification pass reflects
// the new process table.
func (s *ActionService) TerminateByName(name string) (ActionOutcome, error) {
	handles, err := s.list()
	if err != nil {
		return ActionOutcome{}, err
	}

	var matches []procHandle
	for _, h := range handles {
		n, err := h.ProcName()
		if err != nil {
			continue
		}
		if n == name {
			matches = append(matches, h)
		}
	}

	if len(matches) == 0 {
		return ActionOutcome{}, ErrNoMatchingProcess
	}

	var outcome ActionOutcome
	for _, h := range matches {
		rec := ProcessRecord{PID: h.ProcPID(), Name: name}

		if err := h.Terminate(); err != nil {
			if isProcessGone(err) {
				outcome.Terminated = append(outcome.Terminated, rec)
				continue
			}
			reason := failReasonAccessDenied
			if !isAccessDenied(err) {
				reason = err.Error()
			}
			outcome.Failed = append(outcome.Failed, ActionFailure{PID: rec.PID, Name: name, Reason: reason})
			continue
		}

		if s.waitForExit(h) {
			outcome.Terminated = append(outcome.Terminated, rec)
		} else {
			outcome.Failed = append(outcome.Failed, ActionFailure{PID: rec.PID, Name: name, Reason: failReasonTimeout})
		}
	}

	if s.cache != nil {
		s.cache.ForceRefresh()
	}
	return outcome, nil
}

// waitForExit polls the process until it exits or the kill timeout elapses.
func (s *ActionService) waitForExit(h procHandle) bool {
	deadline := time.Now().Add(s.killWait)
	for {
		running, err := h.IsRunning()
		if err != nil || !running {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(s.pollInterval)
	}
}

// ResolveExecutableLocation returns the directory containing the record's
// executable, verifying the path still exists on disk at call time.
func (s *ActionService) ResolveExecutableLocation(rec ProcessRecord) (string, error) {
	if rec.ExePath == "" {
		return "", ErrExecutableNotFound
	}
	if _, err := os.Stat(rec.ExePath); err != nil {
		return "", ErrExecutableNotFound
	}
	return filepath.Dir(rec.ExePath), nil
}

// SnapshotDetail fetches a live detail record for one PID.
func (s *ActionService) SnapshotDetail(pid int32) (ProcessRecord, error) {
	return s.detail(pid)
}

// DetailByName fetches live detail for every process sharing a name, plus
// the aggregate total. Processes that vanish mid-fetch are skipped.
func (s *ActionService) DetailByName(name string) (ProcessDetail, error) {
	handles, err := s.list()
	if err != nil {
		return ProcessDetail{}, err
	}

	detail := ProcessDetail{Name: name}
	for _, h := range handles {
		n, err := h.ProcName()
		if err != nil || n != name {
			continue
		}
		rec, err := s.detail(h.ProcPID())
		if err != nil {
			continue
		}
		detail.Processes = append(detail.Processes, rec)
		detail.TotalMemoryMB += rec.MemoryMB()
	}

	if len(detail.Processes) == 0 {
		return ProcessDetail{}, ErrNoMatchingProcess
	}
	return detail, nil
}

func isAccessDenied(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func isProcessGone(err error) bool {
	return errors.Is(err, process.ErrorProcessNotRunning) || errors.Is(err, syscall.ESRCH)
}
