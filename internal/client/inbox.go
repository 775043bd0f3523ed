package client

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"

	"portfolio-contact/internal/domain"
)

type InboxState string

const (
	InboxLoading InboxState = "loading"
	InboxLoaded  InboxState = "loaded"
)

var ErrDeleteInFlight = errors.New("client: a deletion is already in flight")

type InboxAPI interface {
	List(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// Inbox is the admin view of received messages. It tracks at most one
// deletion at a time and updates its local list without refetching.
type Inbox struct {
	api    InboxAPI
	notify Notifier

	mu         sync.Mutex
	state      InboxState
	messages   []domain.Message
	deletingID string
}

func NewInbox(api InboxAPI, notify Notifier) (*Inbox, error) {
	if api == nil {
		return nil, errors.New("client: inbox api must not be nil")
	}
	if notify == nil {
		return nil, errors.New("client: notifier must not be nil")
	}
	return &Inbox{api: api, notify: notify, state: InboxLoading, messages: []domain.Message{}}, nil
}

func (i *Inbox) State() InboxState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Messages returns a copy of the displayed list.
func (i *Inbox) Messages() []domain.Message {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]domain.Message, len(i.messages))
	copy(out, i.messages)
	return out
}

// DeletingID is the id whose deletion is in flight, or "".
func (i *Inbox) DeletingID() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.deletingID
}

// Load fetches the message list. A failure is reported to the user and leaves
// an empty list on display.
func (i *Inbox) Load(ctx context.Context) error {
	i.mu.Lock()
	i.state = InboxLoading
	i.mu.Unlock()

	msgs, err := i.api.List(ctx)

	i.mu.Lock()
	i.state = InboxLoaded
	if err != nil {
		i.messages = []domain.Message{}
	} else {
		i.messages = msgs
	}
	i.mu.Unlock()

	if err != nil {
		i.notify.Error("Error!", "An error occurred while fetching messages")
		return err
	}
	return nil
}

// Delete asks for confirmation and removes the message. It reports whether
// the message was deleted; a declined confirmation is not an error.
func (i *Inbox) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := i.notify.Confirm(ctx, "Are you sure?", "Do you really want to delete this message?")
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	i.mu.Lock()
	if i.deletingID != "" {
		i.mu.Unlock()
		return false, ErrDeleteInFlight
	}
	i.deletingID = id
	i.mu.Unlock()

	err = i.api.Delete(ctx, id)

	i.mu.Lock()
	i.deletingID = ""
	if err == nil {
		i.messages = lo.Filter(i.messages, func(m domain.Message, _ int) bool {
			return m.ID != id
		})
	}
	i.mu.Unlock()

	if err != nil {
		i.notify.Error("Delete Failed", "An error occurred while deleting the message")
		return false, err
	}
	i.notify.Success("Deleted!", "The message has been deleted.")
	return true, nil
}
