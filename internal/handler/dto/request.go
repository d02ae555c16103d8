package dto

import (
	"strings"

	"github.com/Anas-en/College-event-management/internal/domain"
)

type EventRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Capacity    int      `json:"capacity" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Notes string `json:"notes"`
}

func (r *EventRequest) ToDomain() domain.Event {
	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return domain.Event{
		ID:          domain.ID(r.ID),
		Title:       strings.TrimSpace(r.Title),
		Category:    strings.TrimSpace(r.Category),
		Location:    strings.TrimSpace(r.Location),
		Date:        r.Date,
		Time:        r.Time,
		Capacity:    r.Capacity,
		Description: strings.TrimSpace(r.Description),
		Tags:        tags,
	}
}
