package client

import (
	"context"
	"sync"
)

type note struct {
	kind  string
	title string
}

// recordingNotifier stores every notification and answers confirmations
// with a fixed reply.
type recordingNotifier struct {
	mu         sync.Mutex
	notes      []note
	confirm    bool
	confirmErr error
	asked      int
}

func (r *recordingNotifier) Success(title, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{kind: "success", title: title})
}

func (r *recordingNotifier) Error(title, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{kind: "error", title: title})
}

func (r *recordingNotifier) Confirm(_ context.Context, _, _ string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asked++
	return r.confirm, r.confirmErr
}

func (r *recordingNotifier) all() []note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]note(nil), r.notes...)
}
