package order

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Route estimation methods, recorded on every snapshot so consumers can tell a
// provider polyline from a deterministic fallback.
const (
	// RouteMethodExternal marks a route returned by the external routing provider.
	RouteMethodExternal = "external"

	// RouteMethodGraph marks a route produced by the shortest-path fallback over
	// supplied waypoints.
	RouteMethodGraph = "graph-shortest-path"

	// RouteMethodGreatCircle marks the straight great-circle fallback.
	RouteMethodGreatCircle = "great-circle-fallback"
)

// Route is an immutable snapshot of a single delivery leg: the path polyline,
// its length, the estimated travel time, and the method that produced it.
// Snapshots are stored on the order at assignment and at pickup confirmation,
// and later reused by settlement as the preferred delivery-distance source.
type Route struct {
	path        []kernel.GeoPoint
	distanceKm  float64
	durationMin float64
	method      string
}

// NewRoute creates a validated route snapshot.
// The path must contain at least two points and the distance must not be negative.
func NewRoute(path []kernel.GeoPoint, distanceKm, durationMin float64, method string) (Route, error) {
	if len(path) < 2 {
		return Route{}, errs.NewValueIsRequiredError("route path needs at least two points")
	}
	for _, p := range path {
		if err := p.Validate(); err != nil {
			return Route{}, err
		}
	}
	if distanceKm < 0 {
		return Route{}, errs.NewValueIsOutOfRangeError("distanceKm", distanceKm, 0, "unbounded")
	}
	if durationMin < 0 {
		return Route{}, errs.NewValueIsOutOfRangeError("durationMin", durationMin, 0, "unbounded")
	}
	switch method {
	case RouteMethodExternal, RouteMethodGraph, RouteMethodGreatCircle:
	default:
		return Route{}, errs.NewValueIsInvalidError("route method")
	}

	return Route{
		path:        append([]kernel.GeoPoint(nil), path...),
		distanceKm:  distanceKm,
		durationMin: durationMin,
		method:      method,
	}, nil
}

// Path returns a copy of the route polyline.
func (r Route) Path() []kernel.GeoPoint {
	return append([]kernel.GeoPoint(nil), r.path...)
}

// DistanceKm returns the route length in kilometers.
func (r Route) DistanceKm() float64 {
	return r.distanceKm
}

// DurationMin returns the estimated travel time in minutes.
func (r Route) DurationMin() float64 {
	return r.durationMin
}

// Method returns the estimation method that produced the route.
func (r Route) Method() string {
	return r.method
}

// IsZero reports whether the route is an empty snapshot.
func (r Route) IsZero() bool {
	return len(r.path) == 0
}
