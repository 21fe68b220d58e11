// Package googleroutes calls the Google Routes API v2 for traffic-aware
// directions. It backs the provider-based route suggestion path; when the
// API is unreachable the services layer falls back to synthetic estimates.
package googleroutes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/geo"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/routing"
)

const defaultBaseURL = "https://routes.googleapis.com"

// HTTPDoer abstracts the HTTP client so tests can inject canned responses.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Google Routes API v2.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a Routes API client with a standard HTTP client.
func NewClient(apiKey string) *Client {
	return NewClientWithHTTPDoer(apiKey, defaultBaseURL, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewClientWithHTTPDoer creates a client with an injected HTTP doer.
func NewClientWithHTTPDoer(apiKey, baseURL string, doer HTTPDoer) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: doer,
	}
}

// ComputeRoutes requests traffic-aware driving routes between two points,
// including alternatives. The first route returned is the provider's
// preferred route.
func (c *Client) ComputeRoutes(ctx context.Context, origin, destination geo.Point) ([]routing.ProviderRoute, error) {
	requestBody := map[string]interface{}{
		"origin":                   locationBody(origin),
		"destination":              locationBody(destination),
		"travelMode":               "DRIVE",
		"routingPreference":        "TRAFFIC_AWARE",
		"computeAlternativeRoutes": true,
	}

	response, err := c.post(ctx, requestBody,
		"routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline,routes.description")
	if err != nil {
		return nil, err
	}

	if len(response.Routes) == 0 {
		return nil, fmt.Errorf("no routes found in response")
	}

	routes := make([]routing.ProviderRoute, 0, len(response.Routes))
	for _, route := range response.Routes {
		converted, err := convertRoute(route)
		if err != nil {
			return nil, err
		}
		routes = append(routes, converted)
	}
	return routes, nil
}

// RouteVia requests a single route through an intermediate waypoint. It
// implements routing.LegRouter for provider-backed bypass computation.
func (c *Client) RouteVia(ctx context.Context, origin, via, destination geo.Point) (*routing.ProviderLeg, error) {
	requestBody := map[string]interface{}{
		"origin":            locationBody(origin),
		"destination":       locationBody(destination),
		"intermediates":     []interface{}{locationBody(via)},
		"travelMode":        "DRIVE",
		"routingPreference": "TRAFFIC_AWARE",
	}

	response, err := c.post(ctx, requestBody,
		"routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline")
	if err != nil {
		return nil, err
	}

	if len(response.Routes) == 0 {
		return nil, fmt.Errorf("no routes found in response")
	}

	route := response.Routes[0]
	durationSeconds, err := parseDuration(route.Duration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration: %w", err)
	}

	path, err := geo.DecodePath(route.Polyline.EncodedPolyline)
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	return &routing.ProviderLeg{
		DistanceMeters:  float64(route.DistanceMeters),
		DurationSeconds: float64(durationSeconds),
		Path:            path,
	}, nil
}

// post sends a computeRoutes request with the given field mask. The field
// mask header is required or the API rejects the request.
func (c *Client) post(ctx context.Context, requestBody map[string]interface{}, fieldMask string) (*routesResponse, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/directions/v2:computeRoutes", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limit exceeded")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var response routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &response, nil
}

func convertRoute(route apiRoute) (routing.ProviderRoute, error) {
	durationSeconds, err := parseDuration(route.Duration)
	if err != nil {
		return routing.ProviderRoute{}, fmt.Errorf("failed to parse duration: %w", err)
	}

	path, err := geo.DecodePath(route.Polyline.EncodedPolyline)
	if err != nil {
		return routing.ProviderRoute{}, fmt.Errorf("failed to decode polyline: %w", err)
	}

	return routing.ProviderRoute{
		Summary:    route.Description,
		DistanceKm: float64(route.DistanceMeters) / 1000,
		TimeMin:    float64(durationSeconds) / 60,
		Path:       path,
	}, nil
}

func locationBody(p geo.Point) map[string]interface{} {
	return map[string]interface{}{
		"location": map[string]interface{}{
			"latLng": map[string]interface{}{
				"latitude":  p.Latitude,
				"longitude": p.Longitude,
			},
		},
	}
}

// parseDuration parses Google's duration format like "450s" to seconds.
func parseDuration(durationStr string) (int32, error) {
	if durationStr == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	if len(durationStr) > 1 && durationStr[len(durationStr)-1] == 's' {
		durationStr = durationStr[:len(durationStr)-1]
	}

	var seconds int32
	_, err := fmt.Sscanf(durationStr, "%d", &seconds)
	return seconds, err
}

// routesResponse is the computeRoutes response envelope.
type routesResponse struct {
	Routes []apiRoute `json:"routes"`
}

type apiRoute struct {
	Duration       string      `json:"duration"`
	DistanceMeters int32       `json:"distanceMeters"`
	Description    string      `json:"description"`
	Polyline       apiPolyline `json:"polyline"`
}

type apiPolyline struct {
	EncodedPolyline string `json:"encodedPolyline"`
}
