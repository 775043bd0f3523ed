package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func TestBadgerInsertThenList(t *testing.T) {
	s := newTestBadger(t)
	before := time.Now().UTC()

	msg, err := s.Insert(context.Background(), "Anto", "a@x.com", "hi")
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	require.False(t, msg.SentAt.Before(before))

	msgs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, msg.ID, msgs[0].ID)
	require.Equal(t, "Anto", msgs[0].Name)
	require.Equal(t, "a@x.com", msgs[0].Email)
	require.Equal(t, "hi", msgs[0].Message)
}

func TestBadgerListAll_NewestFirst(t *testing.T) {
	s := newTestBadger(t)
	s.now = steppingClock(time.Date(2026, 2, 27, 11, 0, 0, 0, time.UTC))

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.Insert(context.Background(), "Al", "a@x.com", text)
		require.NoError(t, err)
	}

	msgs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "third", msgs[0].Message)
	require.Equal(t, "second", msgs[1].Message)
	require.Equal(t, "first", msgs[2].Message)
	for i := 0; i+1 < len(msgs); i++ {
		require.False(t, msgs[i].SentAt.Before(msgs[i+1].SentAt))
	}
}

func TestBadgerListAll_Empty(t *testing.T) {
	s := newTestBadger(t)
	msgs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, msgs)
	require.Empty(t, msgs)
}

func TestBadgerDeleteByID_RemovesOnlyTarget(t *testing.T) {
	s := newTestBadger(t)
	keep, err := s.Insert(context.Background(), "Al", "a@x.com", "keep")
	require.NoError(t, err)
	drop, err := s.Insert(context.Background(), "Bea", "b@x.com", "drop")
	require.NoError(t, err)

	found, err := s.DeleteByID(context.Background(), drop.ID)
	require.NoError(t, err)
	require.True(t, found)

	found, err = s.DeleteByID(context.Background(), drop.ID)
	require.NoError(t, err)
	require.False(t, found)

	msgs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, keep.ID, msgs[0].ID)
}

func TestBadgerDeleteByID_UnknownID(t *testing.T) {
	s := newTestBadger(t)
	found, err := s.DeleteByID(context.Background(), "000000000000000000000000")
	require.NoError(t, err)
	require.False(t, found)
}

func TestBadgerDeleteByID_BlankID(t *testing.T) {
	s := newTestBadger(t)
	_, err := s.DeleteByID(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestBadgerInsert_IDError(t *testing.T) {
	s := newTestBadger(t)
	s.newID = func() (string, error) { return "", errors.New("entropy exhausted") }
	_, err := s.Insert(context.Background(), "Al", "a@x.com", "hi")
	require.ErrorContains(t, err, "entropy exhausted")
}

func TestNewBadgerStore_NilDB(t *testing.T) {
	_, err := NewBadgerStore(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}
