package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, WithHTTPClient(&http.Client{Timeout: 2 * time.Second}))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(" ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be empty")

	_, err = NewClient("not a url")
	require.Error(t, err)

	c, err := NewClient("https://antojoseph.onrender.com/")
	require.NoError(t, err)
	require.Equal(t, "https://antojoseph.onrender.com/api/contact/admin", c.contactURL("/admin"))
}

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/contact", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var s Submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&s))
		require.Equal(t, Submission{Name: "Anto", Email: "a@x.com", Message: "hi"}, s)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	err := newTestClient(t, srv).Submit(context.Background(), Submission{Name: "Anto", Email: "a@x.com", Message: "hi"})
	require.NoError(t, err)
}

func TestClient_SubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Server Error"}`))
	}))
	defer srv.Close()

	err := newTestClient(t, srv).Submit(context.Background(), Submission{Name: "Anto"})
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.HTTPStatusCode())
	require.Contains(t, err.Error(), "Server Error")
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/contact/admin", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"b","name":"Bea","email":"b@x.com","message":"second","date":"2026-02-27T12:00:00Z"},
			{"_id":"a","name":"Al","email":"a@x.com","message":"first","date":"2026-02-27T11:00:00Z"}]`))
	}))
	defer srv.Close()

	msgs, err := newTestClient(t, srv).List(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "b", msgs[0].ID)
	require.Equal(t, time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC), msgs[0].SentAt)
}

func TestClient_ListInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-a-json`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/contact/64b7f0c2a1b2c3d4e5f60718", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Message deleted successfully"}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(t, srv).Delete(context.Background(), "64b7f0c2a1b2c3d4e5f60718"))
}

func TestClient_DeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Message not found"}`))
	}))
	defer srv.Close()

	err := newTestClient(t, srv).Delete(context.Background(), "000000000000000000000000")
	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
