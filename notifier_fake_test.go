package main

import (
	"errors"
	"sync"
)

// fakeNotifier records every notification it receives.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	fail bool
}

type sentNotification struct {
	Title   string
	Message string
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("sink unavailable")
	}
	f.sent = append(f.sent, sentNotification{Title: title, Message: message})
	return nil
}

func (f *fakeNotifier) Sent() []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentNotification, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeNotifier) CountByTitle(title string) int {
	n := 0
	for _, s := range f.Sent() {
		if s.Title == title {
			n++
		}
	}
	return n
}
