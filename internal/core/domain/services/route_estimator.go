package services

import (
	"context"
	"log/slog"
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// DefaultAverageSpeedKmh is the assumed courier speed used to derive a
// duration when the routing provider did not supply one.
const DefaultAverageSpeedKmh = 25.0

// RouteEstimator is a domain service that produces a route between two points,
// degrading deterministically when the external routing provider is
// unavailable.
//
// Strategies, tried in order:
//  1. The external routing provider. Its polyline, distance, and duration are
//     taken as-is.
//  2. A shortest path over the complete graph spanned by origin, the supplied
//     waypoints, and destination, with great-circle edge weights.
//  3. The straight great-circle segment between origin and destination.
//
// Every strategy is total: the estimator always returns a usable route, and
// provider failures are logged, never surfaced to callers. Given fixed inputs
// and a fixed provider answer, estimation is pure.
type RouteEstimator struct {
	provider    ports.RouteProvider
	avgSpeedKmh float64
	logger      *slog.Logger
}

// NewRouteEstimator creates a RouteEstimator with the given provider.
// A nil provider skips straight to the deterministic fallbacks.
func NewRouteEstimator(provider ports.RouteProvider, avgSpeedKmh float64, logger *slog.Logger) *RouteEstimator {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAverageSpeedKmh
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteEstimator{
		provider:    provider,
		avgSpeedKmh: avgSpeedKmh,
		logger:      logger.With("component", "route-estimator"),
	}
}

// Estimate returns a route from origin to destination. Waypoints only
// participate in the graph fallback; the provider is asked for the direct leg.
func (e *RouteEstimator) Estimate(
	ctx context.Context,
	origin, destination kernel.GeoPoint,
	waypoints []kernel.GeoPoint,
) (order.Route, error) {
	if err := origin.Validate(); err != nil {
		return order.Route{}, err
	}
	if err := destination.Validate(); err != nil {
		return order.Route{}, err
	}

	if e.provider != nil {
		route, err := e.provider.GetRoute(ctx, origin, destination)
		if err == nil && !route.IsZero() {
			return route, nil
		}
		if err != nil {
			degraded := errs.NewDownstreamDegradedError("routing provider", err)
			e.logger.Warn("routing provider failed, falling back",
				"error", degraded)
		}
	}

	if len(waypoints) > 0 {
		if route, err := e.graphShortestPath(origin, destination, waypoints); err == nil {
			return route, nil
		}
	}

	return e.greatCircle(origin, destination)
}

// graphShortestPath builds a complete graph over {origin, waypoints, destination}
// with great-circle edge weights and runs Dijkstra from origin to destination.
func (e *RouteEstimator) graphShortestPath(
	origin, destination kernel.GeoPoint,
	waypoints []kernel.GeoPoint,
) (order.Route, error) {
	for _, p := range waypoints {
		if err := p.Validate(); err != nil {
			return order.Route{}, err
		}
	}

	nodes := make([]kernel.GeoPoint, 0, len(waypoints)+2)
	nodes = append(nodes, origin)
	nodes = append(nodes, waypoints...)
	nodes = append(nodes, destination)

	n := len(nodes)
	edges := make([][]float64, n)
	for i := range nodes {
		edges[i] = make([]float64, n)
		for j := range nodes {
			if i == j {
				continue
			}
			d, err := nodes[i].DistanceKm(nodes[j])
			if err != nil {
				return order.Route{}, err
			}
			edges[i][j] = d
		}
	}

	const unreached = math.MaxFloat64
	dist := make([]float64, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range nodes {
		dist[i] = unreached
		prev[i] = -1
	}
	dist[0] = 0

	for {
		current := -1
		best := unreached
		for i := range nodes {
			if !visited[i] && dist[i] < best {
				current, best = i, dist[i]
			}
		}
		if current == -1 || current == n-1 {
			break
		}
		visited[current] = true

		for next := range nodes {
			if visited[next] || next == current {
				continue
			}
			candidate := dist[current] + edges[current][next]
			if candidate < dist[next] {
				dist[next] = candidate
				prev[next] = current
			}
		}
	}

	if dist[n-1] == unreached {
		return order.Route{}, errs.NewValueIsInvalidError("destination unreachable")
	}

	path := make([]kernel.GeoPoint, 0, n)
	for at := n - 1; at != -1; at = prev[at] {
		path = append(path, nodes[at])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	distanceKm := dist[n-1]
	return order.NewRoute(path, distanceKm, e.durationMin(distanceKm), order.RouteMethodGraph)
}

// greatCircle returns the straight two-point fallback route.
func (e *RouteEstimator) greatCircle(origin, destination kernel.GeoPoint) (order.Route, error) {
	distanceKm, err := origin.DistanceKm(destination)
	if err != nil {
		return order.Route{}, err
	}
	return order.NewRoute(
		[]kernel.GeoPoint{origin, destination},
		distanceKm,
		e.durationMin(distanceKm),
		order.RouteMethodGreatCircle,
	)
}

func (e *RouteEstimator) durationMin(distanceKm float64) float64 {
	return distanceKm / e.avgSpeedKmh * 60
}
