package ports

import (
	"context"

	"github.com/Anas-en/College-event-management/internal/domain"
)

type CollectionStore interface {
	BootstrapEvents(ctx context.Context) domain.BootstrapResult
	Events(ctx context.Context) domain.Snapshot[domain.Event]
	Registrations(ctx context.Context) domain.Snapshot[domain.Registration]
	SaveEvents(ctx context.Context, events []domain.Event) error
	SaveRegistrations(ctx context.Context, registrations []domain.Registration) error
}
