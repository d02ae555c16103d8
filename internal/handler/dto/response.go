package dto

import (
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
)

type EventResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Capacity    int      `json:"capacity"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type RegistrationResponse struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

type RegistrationViewResponse struct {
	RegistrationResponse
	EventTitle string `json:"event_title"`
	EventFound bool   `json:"event_found"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Category:    e.Category,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Capacity:    e.Capacity,
		Description: e.Description,
		Tags:        tags,
	}
}

func ToEventsResponse(events []domain.Event) []EventResponse {
	resp := make([]EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, ToEventResponse(&events[i]))
	}
	return resp
}

func ToRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID.String(),
		EventID:   r.EventID.String(),
		Name:      r.Name,
		Email:     r.Email,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToRegistrationViewResponse(v *domain.RegistrationView) RegistrationViewResponse {
	return RegistrationViewResponse{
		RegistrationResponse: ToRegistrationResponse(&v.Registration),
		EventTitle:           v.EventTitle,
		EventFound:           v.EventFound,
	}
}
