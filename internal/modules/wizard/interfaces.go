package wizard

import (
	"context"

	"groupstays/internal/domain"
	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/property"
)

// PropertyAPI is the part of the Property API client the wizard uses.
type PropertyAPI interface {
	CreateProperty(ctx context.Context, token string, p listing.Payload) (*property.Property, error)
	UpdateProperty(ctx context.Context, token, id string, p listing.Payload) (*property.Property, error)
	GetProperty(ctx context.Context, token, id string) (*property.Property, error)
	MarkPlanUsed(ctx context.Context, token, purchaseID, propertyID string) error
	ImageStore(token string) listing.ImageStore
}

// PlanMarkQueue keeps failed mark-plan-used calls for the retry task.
type PlanMarkQueue interface {
	Enqueue(ctx context.Context, m *domain.PlanMark) error
}
