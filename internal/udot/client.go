package udot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"roadwatch/internal/model"
)

// API docs: https://www.udottraffic.utah.gov/api
// All endpoints return every record statewide; there is no server-side
// filtering. Rate limit upstream: 10 calls per 60 seconds.
const defaultBaseURL = "https://www.udottraffic.utah.gov/api/v2/get"

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

// fetch retrieves one endpoint and decodes the JSON array into out.
func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return fmt.Errorf("failed to build URL for %s: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// ---- wire types (PascalCase as the API sends them) ----

type cameraView struct {
	Url string `json:"Url"`
}

type cameraItem struct {
	Id        int          `json:"Id"`
	SourceId  string       `json:"SourceId"`
	Roadway   string       `json:"Roadway"`
	Direction string       `json:"Direction"`
	Location  string       `json:"Location"`
	Latitude  *float64     `json:"Latitude"`
	Longitude *float64     `json:"Longitude"`
	Views     []cameraView `json:"Views"`
}

type conditionItem struct {
	Id               int    `json:"Id"`
	RoadwayName      string `json:"RoadwayName"`
	RoadCondition    string `json:"RoadCondition"`
	WeatherCondition string `json:"WeatherCondition"`
	Restriction      string `json:"Restriction"`
	EncodedPolyline  string `json:"EncodedPolyline"`
	LastUpdated      int64  `json:"LastUpdated"`
}

// flexID is an identifier the API sends as either a JSON number or a JSON
// string depending on the feed.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ID is neither string nor number: %s", string(data))
	}
	*f = flexID(n.String())
	return nil
}

type eventItem struct {
	ID                flexID   `json:"ID"`
	EventType         string      `json:"EventType"`
	EventSubType      string      `json:"EventSubType"`
	RoadwayName       string      `json:"RoadwayName"`
	DirectionOfTravel string      `json:"DirectionOfTravel"`
	Description       string      `json:"Description"`
	Severity          string      `json:"Severity"`
	Latitude          *float64    `json:"Latitude"`
	Longitude         *float64    `json:"Longitude"`
	IsFullClosure     bool        `json:"IsFullClosure"`
}

type weatherItem struct {
	Id               int    `json:"Id"`
	StationName      string `json:"StationName"`
	AirTemperature   string `json:"AirTemperature"`
	SurfaceTemp      string `json:"SurfaceTemp"`
	SurfaceStatus    string `json:"SurfaceStatus"`
	WindSpeedAvg     string `json:"WindSpeedAvg"`
	WindSpeedGust    string `json:"WindSpeedGust"`
	WindDirection    string `json:"WindDirection"`
	Precipitation    string `json:"Precipitation"`
	RelativeHumidity string `json:"RelativeHumidity"`
}

type seasonalInfo struct {
	SeasonalClosureStatus      string `json:"SeasonalClosureStatus"`
	SeasonalClosureDescription string `json:"SeasonalClosureDescription"`
}

type passItem struct {
	Id            int            `json:"Id"`
	Name          string         `json:"Name"`
	Roadway       string         `json:"Roadway"`
	MaxElevation  string         `json:"MaxElevation"`
	Latitude      *float64       `json:"Latitude"`
	Longitude     *float64       `json:"Longitude"`
	AirTemperature string        `json:"AirTemperature"`
	WindSpeed     string         `json:"WindSpeed"`
	WindGust      string         `json:"WindGust"`
	WindDirection string         `json:"WindDirection"`
	SurfaceTemp   string         `json:"SurfaceTemp"`
	SurfaceStatus string         `json:"SurfaceStatus"`
	Visibility    string         `json:"Visibility"`
	Forecasts     string         `json:"Forecasts"`
	SeasonalInfo  []seasonalInfo `json:"SeasonalInfo"`
}

type plowItem struct {
	Id          int      `json:"Id"`
	Name        string   `json:"Name"`
	Latitude    *float64 `json:"Latitude"`
	Longitude   *float64 `json:"Longitude"`
	Heading     *float64 `json:"Heading"`
	Speed       *float64 `json:"Speed"`
	LastUpdated string   `json:"LastUpdated"`
}

// ---- fetch methods ----

// FetchCameras returns all statewide traffic cameras.
func (c *Client) FetchCameras(ctx context.Context) ([]model.Camera, error) {
	var raw []cameraItem
	if err := c.fetch(ctx, "cameras", &raw); err != nil {
		return nil, err
	}

	cameras := make([]model.Camera, 0, len(raw))
	for _, item := range raw {
		views := make([]model.CameraView, 0, len(item.Views))
		for _, v := range item.Views {
			views = append(views, model.CameraView{URL: v.Url})
		}
		cameras = append(cameras, model.Camera{
			ID:        item.Id,
			SourceID:  item.SourceId,
			Roadway:   item.Roadway,
			Direction: item.Direction,
			Location:  item.Location,
			Latitude:  item.Latitude,
			Longitude: item.Longitude,
			Views:     views,
		})
	}
	return cameras, nil
}

// FetchRoadConditions returns all road surface/weather conditions.
func (c *Client) FetchRoadConditions(ctx context.Context) ([]model.RoadCondition, error) {
	var raw []conditionItem
	if err := c.fetch(ctx, "roadconditions", &raw); err != nil {
		return nil, err
	}

	conditions := make([]model.RoadCondition, 0, len(raw))
	for _, item := range raw {
		conditions = append(conditions, model.RoadCondition{
			ConditionID:      item.Id,
			RoadwayName:      item.RoadwayName,
			RoadCondition:    item.RoadCondition,
			WeatherCondition: item.WeatherCondition,
			Restriction:      item.Restriction,
			EncodedPolyline:  item.EncodedPolyline,
			LastUpdated:      item.LastUpdated,
		})
	}
	return conditions, nil
}

// FetchEvents returns all traffic events (accidents, construction, closures).
func (c *Client) FetchEvents(ctx context.Context) ([]model.Event, error) {
	var raw []eventItem
	if err := c.fetch(ctx, "event", &raw); err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(raw))
	for _, item := range raw {
		events = append(events, model.Event{
			EventID:       string(item.ID),
			EventType:     item.EventType,
			EventSubType:  item.EventSubType,
			RoadwayName:   item.RoadwayName,
			Direction:     item.DirectionOfTravel,
			Description:   item.Description,
			Severity:      item.Severity,
			Latitude:      item.Latitude,
			Longitude:     item.Longitude,
			IsFullClosure: item.IsFullClosure,
		})
	}
	return events, nil
}

// FetchWeatherStations returns all road weather station readings.
func (c *Client) FetchWeatherStations(ctx context.Context) ([]model.WeatherStation, error) {
	var raw []weatherItem
	if err := c.fetch(ctx, "weatherstations", &raw); err != nil {
		return nil, err
	}

	stations := make([]model.WeatherStation, 0, len(raw))
	for _, item := range raw {
		stations = append(stations, model.WeatherStation{
			StationID:        item.Id,
			StationName:      item.StationName,
			AirTemperature:   item.AirTemperature,
			SurfaceTemp:      item.SurfaceTemp,
			SurfaceStatus:    item.SurfaceStatus,
			WindSpeedAvg:     item.WindSpeedAvg,
			WindSpeedGust:    item.WindSpeedGust,
			WindDirection:    item.WindDirection,
			Precipitation:    item.Precipitation,
			RelativeHumidity: item.RelativeHumidity,
		})
	}
	return stations, nil
}

// FetchMountainPasses returns all mountain pass conditions.
func (c *Client) FetchMountainPasses(ctx context.Context) ([]model.MountainPass, error) {
	var raw []passItem
	if err := c.fetch(ctx, "mountainpasses", &raw); err != nil {
		return nil, err
	}

	passes := make([]model.MountainPass, 0, len(raw))
	for _, item := range raw {
		p := model.MountainPass{
			PassID:         item.Id,
			Name:           item.Name,
			Roadway:        item.Roadway,
			ElevationFt:    item.MaxElevation,
			Latitude:       item.Latitude,
			Longitude:      item.Longitude,
			AirTemperature: item.AirTemperature,
			WindSpeed:      item.WindSpeed,
			WindGust:       item.WindGust,
			WindDirection:  item.WindDirection,
			SurfaceTemp:    item.SurfaceTemp,
			SurfaceStatus:  item.SurfaceStatus,
			Visibility:     item.Visibility,
			Forecasts:      item.Forecasts,
		}
		if len(item.SeasonalInfo) > 0 {
			p.ClosureStatus = item.SeasonalInfo[0].SeasonalClosureStatus
			p.ClosureDescription = item.SeasonalInfo[0].SeasonalClosureDescription
		}
		passes = append(passes, p)
	}
	return passes, nil
}

// FetchSnowPlows returns all real-time service vehicle positions.
func (c *Client) FetchSnowPlows(ctx context.Context) ([]model.SnowPlow, error) {
	var raw []plowItem
	if err := c.fetch(ctx, "servicevehicles", &raw); err != nil {
		return nil, err
	}

	plows := make([]model.SnowPlow, 0, len(raw))
	for _, item := range raw {
		plows = append(plows, model.SnowPlow{
			PlowID:      item.Id,
			Name:        item.Name,
			Latitude:    item.Latitude,
			Longitude:   item.Longitude,
			Heading:     item.Heading,
			Speed:       item.Speed,
			LastUpdated: item.LastUpdated,
		})
	}
	return plows, nil
}

// IsPassClosed reports whether the pass matching the keyword is seasonally
// closed. The second return value is false when the pass is not in the feed.
func (c *Client) IsPassClosed(ctx context.Context, keyword string) (closed bool, found bool, err error) {
	passes, err := c.FetchMountainPasses(ctx)
	if err != nil {
		return false, false, err
	}
	for i := range passes {
		if containsFold(passes[i].Name, keyword) {
			return passes[i].IsClosed(), true, nil
		}
	}
	return false, false, nil
}
