package domain

import "time"

// Message is a contact submission left by a visitor. The JSON shape matches
// the public API: the store id is exposed as "_id" and the send time as "date".
type Message struct {
	ID      string    `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"date"`
}
