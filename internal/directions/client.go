package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roadwatch/internal/config"
	"roadwatch/internal/model"
)

// API docs: https://developers.google.com/maps/documentation/directions
const defaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// ---- wire types ----

type valueText struct {
	Value int `json:"value"`
}

type leg struct {
	Distance          valueText  `json:"distance"`
	Duration          valueText  `json:"duration"`
	DurationInTraffic *valueText `json:"duration_in_traffic"`
}

type overviewPolyline struct {
	Points string `json:"points"`
}

type apiRoute struct {
	Legs             []leg            `json:"legs"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
}

type directionsResponse struct {
	Status string     `json:"status"`
	Routes []apiRoute `json:"routes"`
}

// FetchRoutes fetches every configured named route. A per-route failure
// produces a stub route so the route still appears in exported data.
func (c *Client) FetchRoutes(ctx context.Context, origin, destination string, defs []config.RouteDef) []*model.Route {
	routes := make([]*model.Route, 0, len(defs))
	for _, def := range defs {
		route, err := c.FetchRoute(ctx, origin, destination, def)
		if err != nil {
			log.Printf("Route %q failed: %v", def.Name, err)
			route = stubRoute(origin, destination, def)
		}
		routes = append(routes, route)
	}
	return routes
}

// FetchRoute fetches a single route via its configured waypoints.
func (c *Client) FetchRoute(ctx context.Context, origin, destination string, def config.RouteDef) (*model.Route, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", "driving")
	q.Set("departure_time", "now")
	if len(def.Waypoints) > 0 {
		via := make([]string, len(def.Waypoints))
		for i, wp := range def.Waypoints {
			via[i] = "via:" + wp
		}
		q.Set("waypoints", strings.Join(via, "|"))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("directions returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if parsed.Status != "OK" || len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("no route found (status %s)", parsed.Status)
	}

	first := parsed.Routes[0]

	// With via-waypoints the provider splits the trip into legs; sum them
	// for end-to-end totals.
	totalDistance, totalDuration := 0, 0
	trafficKnown := true
	totalTraffic := 0
	for _, l := range first.Legs {
		totalDistance += l.Distance.Value
		totalDuration += l.Duration.Value
		if l.DurationInTraffic == nil {
			trafficKnown = false
		} else {
			totalTraffic += l.DurationInTraffic.Value
		}
	}

	route := &model.Route{
		RouteID:     def.RouteID,
		Name:        def.Name,
		Color:       def.Color,
		Origin:      origin,
		Destination: destination,
		Polyline:    first.OverviewPolyline.Points,
		DistanceM:   totalDistance,
		DurationS:   totalDuration,
		UpdatedAt:   time.Now(),
	}
	if trafficKnown && len(first.Legs) > 0 {
		route.DurationInTrafficS = &totalTraffic
	}

	log.Printf("Route %s: %.1f mi, %.0f min",
		def.Name, float64(route.DistanceM)/1609.34, float64(route.DurationS)/60)

	return route, nil
}

func stubRoute(origin, destination string, def config.RouteDef) *model.Route {
	return &model.Route{
		RouteID:     def.RouteID,
		Name:        def.Name,
		Color:       def.Color,
		Origin:      origin,
		Destination: destination,
		UpdatedAt:   time.Now(),
	}
}
