package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

type stubProvider struct {
	route order.Route
	err   error
	calls int
}

func (s *stubProvider) GetRoute(_ context.Context, _, _ kernel.GeoPoint) (order.Route, error) {
	s.calls++
	return s.route, s.err
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func Test_Estimate_PrefersProviderRoute(t *testing.T) {
	origin := point(t, 12.97, 77.59)
	destination := point(t, 13.08, 80.27)
	providerRoute, err := order.NewRoute(
		[]kernel.GeoPoint{origin, point(t, 13.0, 78.5), destination},
		305.4, 280, order.RouteMethodExternal)
	require.NoError(t, err)

	provider := &stubProvider{route: providerRoute}
	estimator := services.NewRouteEstimator(provider, 25, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, nil)
	require.NoError(t, err)

	assert.Equal(t, order.RouteMethodExternal, got.Method())
	assert.InDelta(t, 305.4, got.DistanceKm(), 0.001)
	assert.Equal(t, 1, provider.calls)
}

func Test_Estimate_FailingProviderNoWaypoints_GreatCircle(t *testing.T) {
	origin := point(t, 12.9716, 77.5946)
	destination := point(t, 13.0827, 80.2707)

	provider := &stubProvider{err: errors.New("connection refused")}
	estimator := services.NewRouteEstimator(provider, 25, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, nil)
	require.NoError(t, err)

	direct, err := origin.DistanceKm(destination)
	require.NoError(t, err)
	assert.Equal(t, order.RouteMethodGreatCircle, got.Method())
	assert.InDelta(t, direct, got.DistanceKm(), 1e-9)
	assert.Len(t, got.Path(), 2)
}

func Test_Estimate_FailingProviderWithWaypoints_GraphShortestPath(t *testing.T) {
	origin := point(t, 12.90, 77.50)
	destination := point(t, 12.90, 77.70)
	waypoints := []kernel.GeoPoint{
		point(t, 12.90, 77.60),
		point(t, 14.50, 78.00),
	}

	provider := &stubProvider{err: errors.New("timeout")}
	estimator := services.NewRouteEstimator(provider, 25, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, waypoints)
	require.NoError(t, err)

	direct, err := origin.DistanceKm(destination)
	require.NoError(t, err)
	assert.Equal(t, order.RouteMethodGraph, got.Method())
	// the direct edge is never longer than any detour, so the shortest path
	// matches the great-circle distance
	assert.InDelta(t, direct, got.DistanceKm(), 1e-9)

	path := got.Path()
	first, err := path[0].IsEqual(origin)
	require.NoError(t, err)
	last, err := path[len(path)-1].IsEqual(destination)
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, last)
}

func Test_Estimate_NilProviderFallsBackImmediately(t *testing.T) {
	origin := point(t, 12.90, 77.50)
	destination := point(t, 12.95, 77.55)

	estimator := services.NewRouteEstimator(nil, 25, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, nil)
	require.NoError(t, err)
	assert.Equal(t, order.RouteMethodGreatCircle, got.Method())
}

func Test_Estimate_DurationDerivedFromAverageSpeed(t *testing.T) {
	origin := point(t, 0, 0)
	destination := point(t, 0, 0.5)

	estimator := services.NewRouteEstimator(nil, 30, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, nil)
	require.NoError(t, err)
	assert.InDelta(t, got.DistanceKm()/30*60, got.DurationMin(), 1e-9)
}

func Test_Estimate_EmptyProviderRouteTreatedAsFailure(t *testing.T) {
	origin := point(t, 12.90, 77.50)
	destination := point(t, 12.95, 77.55)

	provider := &stubProvider{route: order.Route{}}
	estimator := services.NewRouteEstimator(provider, 25, nil)

	got, err := estimator.Estimate(context.Background(), origin, destination, nil)
	require.NoError(t, err)
	assert.Equal(t, order.RouteMethodGreatCircle, got.Method())
}
