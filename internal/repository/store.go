package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"portfolio-contact/internal/domain"
)

// ErrInvalidID is returned by DeleteByID when the id cannot address a record
// in the backing store.
var ErrInvalidID = errors.New("repository: invalid message id")

// Store is the contact message persistence contract shared by every backend.
type Store interface {
	Insert(ctx context.Context, name, email, message string) (domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Close(ctx context.Context) error
}

// newMessageID returns a UUIDv7 so that lexical key order follows insertion time.
func newMessageID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// sortNewestFirst orders messages by SentAt descending, keeping key order for ties.
func sortNewestFirst(msgs []domain.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].SentAt.After(msgs[j].SentAt)
	})
}

func utcNow() time.Time {
	return time.Now().UTC()
}
