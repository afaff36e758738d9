package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
		"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
	)
)

// GetActiveDeliveriesQuery retrieves the courier's assigned, not yet finished
// deliveries for the courier app's task list.
type GetActiveDeliveriesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query for the given courier.
func NewGetActiveDeliveriesQuery(courierID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return GetActiveDeliveriesQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the courier whose deliveries are requested.
func (q GetActiveDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse is one active delivery row. DeliveryStatus
// is the coarse status derived from the stored phase.
type GetActiveDeliveriesQueryResponse struct {
	OrderID          kernel.UUID
	SellerLocation   kernel.GeoPoint
	CustomerLocation kernel.GeoPoint
	Status           string
	DeliveryStatus   string
	Payment          string
	Total            kernel.Money
}
