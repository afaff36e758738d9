package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// RouteProvider is the outbound contract to the external routing service.
// Implementations must honor the context deadline; the route estimator treats
// any error as a degraded provider and falls back to deterministic estimation.
type RouteProvider interface {
	// GetRoute returns the provider's route between two points.
	GetRoute(ctx context.Context, origin, destination kernel.GeoPoint) (order.Route, error)
}
