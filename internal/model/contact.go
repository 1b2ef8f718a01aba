package model

import "time"

// ListLimit caps how many submissions the listing endpoint returns.
const ListLimit = 100

// ContactSubmission is a message submitted via the contact form.
// ID and CreatedAt are assigned by the record store on create and never change.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
