package ports

import (
	"context"

	"github.com/Anas-en/College-event-management/internal/domain"
)

type RegistrationNotifier interface {
	NotifyRegistrationCreated(ctx context.Context, registration *domain.Registration, event *domain.Event)
}
