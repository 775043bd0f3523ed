package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"portfolio-contact/internal/domain"
)

const badgerKeyPrefix = "contact:"

// BadgerStore keeps contact messages in an embedded Badger database. Keys are
// "contact:{uuidv7}" so a reverse prefix scan yields the newest messages first.
type BadgerStore struct {
	db    *badger.DB
	now   func() time.Time
	newID func() (string, error)
}

type badgerRecord struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// OpenBadger opens (or creates) the database at path. An empty path opens an
// in-memory database.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if strings.TrimSpace(path) == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("repository: open badger: %w", err)
	}
	return NewBadgerStore(db)
}

// NewBadgerStore wraps an open database.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	if db == nil {
		return nil, errors.New("repository: badger db must not be nil")
	}
	return &BadgerStore{db: db, now: utcNow, newID: newMessageID}, nil
}

func badgerKey(id string) []byte {
	return []byte(badgerKeyPrefix + id)
}

func (s *BadgerStore) Insert(_ context.Context, name, email, message string) (domain.Message, error) {
	id, err := s.newID()
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert id: %w", err)
	}
	rec := badgerRecord{ID: id, Name: name, Email: email, Message: message, Date: s.now()}
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert marshal: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(id), data)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("repository: Insert: %w", err)
	}
	return rec.toDomain(), nil
}

func (s *BadgerStore) ListAll(_ context.Context) ([]domain.Message, error) {
	msgs := make([]domain.Message, 0)
	prefix := []byte(badgerKeyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration must start past the last key carrying the prefix.
		seek := append([]byte(badgerKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec badgerRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				msgs = append(msgs, rec.toDomain())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repository: ListAll: %w", err)
	}
	sortNewestFirst(msgs)
	return msgs, nil
}

func (s *BadgerStore) DeleteByID(_ context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrInvalidID
	}
	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(badgerKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return txn.Delete(badgerKey(id))
	})
	if err != nil {
		return false, fmt.Errorf("repository: DeleteByID: %w", err)
	}
	return found, nil
}

func (s *BadgerStore) Close(context.Context) error {
	return s.db.Close()
}

func (r badgerRecord) toDomain() domain.Message {
	return domain.Message{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
		SentAt:  r.Date.UTC(),
	}
}
