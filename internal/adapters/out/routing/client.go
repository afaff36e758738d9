// Package routing provides the HTTP client for the external routing service.
// The service speaks the OSRM route API; any transport or decoding failure is
// wrapped as a degraded-downstream error so the route estimator can fall back.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// DefaultTimeout bounds one routing call. The estimator has deterministic
// fallbacks, so waiting longer than this buys nothing.
const DefaultTimeout = 5 * time.Second

// Client calls the external routing service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client for the given base URL.
// A nil httpClient gets a default with DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("routing base URL")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// routeResponse mirrors the OSRM route API response shape.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute asks the routing service for the driving route between two points.
func (c *Client) GetRoute(
	ctx context.Context,
	origin, destination kernel.GeoPoint,
) (order.Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, origin.Lng(), origin.Lat(), destination.Lng(), destination.Lat())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded routeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider", err)
	}
	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider",
			fmt.Errorf("no route in response, code %q", decoded.Code))
	}

	best := decoded.Routes[0]
	path := make([]kernel.GeoPoint, 0, len(best.Geometry.Coordinates))
	for _, coord := range best.Geometry.Coordinates {
		if len(coord) < 2 {
			return order.Route{}, errs.NewDownstreamDegradedError("routing provider",
				fmt.Errorf("malformed coordinate pair"))
		}
		point, pointErr := kernel.NewGeoPoint(coord[1], coord[0])
		if pointErr != nil {
			return order.Route{}, errs.NewDownstreamDegradedError("routing provider", pointErr)
		}
		path = append(path, point)
	}

	route, err := order.NewRoute(
		path,
		best.Distance/1000,
		best.Duration/60,
		order.RouteMethodExternal,
	)
	if err != nil {
		return order.Route{}, errs.NewDownstreamDegradedError("routing provider", err)
	}

	return route, nil
}
