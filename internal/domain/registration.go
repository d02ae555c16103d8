package domain

import "time"

type Registration struct {
	ID        ID        `json:"id"`
	EventID   ID        `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRegistrationInput struct {
	EventID ID
	Name    string
	Email   string
	Notes   string
}

// RegistrationView pairs a registration with the title of its event.
// When the event no longer exists EventTitle holds the raw event id.
type RegistrationView struct {
	Registration Registration
	EventTitle   string
	EventFound   bool
}
