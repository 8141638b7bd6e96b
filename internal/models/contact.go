package models

import "time"

// ContactRequest is a message submitted through the public contact form.
type ContactRequest struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}
