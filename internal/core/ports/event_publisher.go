package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Notification audiences.
const (
	AudienceSeller   = "seller"
	AudienceCustomer = "customer"
	AudienceCourier  = "courier"
)

// Notification event kinds.
const (
	EventOrderAssigned    = "order.assigned"
	EventCourierEnRoute   = "order.courier_en_route"
	EventOrderDelivered   = "order.delivered"
	EventConfirmIdentity  = "order.confirm_identity"
	EventWithdrawalReview = "wallet.withdrawal_reviewed"
)

// OrderEvent is an integration event published to notification channels.
type OrderEvent struct {
	OrderID    kernel.UUID
	Kind       string
	Recipient  kernel.UUID
	Audience   string
	OccurredAt time.Time
}

// EventPublisher defines the outbound contract for asynchronous notifications.
// Publishing is best effort: settlement and transitions log failures and never
// roll back on them.
type EventPublisher interface {
	// Publish sends one event to the recipient's channel.
	Publish(ctx context.Context, event OrderEvent) error

	// Close releases the underlying connection.
	Close() error
}
