// Package vehicles is a small fleet dashboard built entirely from services
// resolved out of the application locator.
package vehicles

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates [2]float64

type Vehicle struct {
	ID            int         `json:"id"`
	Year          int         `json:"year"`
	Make          string      `json:"make"`
	Model         string      `json:"model"`
	RemainingFuel float64     `json:"remaining_fuel"`
	GasMileage    float64     `json:"gas_mileage"`
	LastLocation  Coordinates `json:"last_location"`
}

// ── APIClient ────────────────────────────────────────────────────────────────

// APIClient talks to the upstream vehicle API.
type APIClient struct {
	http              *http.Client
	baseURL           string
	defaultPageLength int
}

// NewAPIClient is registered with its client, base URL and page length bound,
// so consumers build one with no arguments.
func NewAPIClient(client *http.Client, baseURL string, defaultPageLength int) *APIClient {
	return &APIClient{
		http:              client,
		baseURL:           strings.TrimRight(baseURL, "/"),
		defaultPageLength: defaultPageLength,
	}
}

// PageLength returns the number of vehicles requested per page.
func (c *APIClient) PageLength() int { return c.defaultPageLength }

// ListVehicles fetches the first page of vehicles.
func (c *APIClient) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var out []Vehicle
	err := c.get(ctx, fmt.Sprintf("/vehicles?per_page=%d", c.defaultPageLength), &out)
	return out, err
}

// GetVehicle fetches one vehicle.
func (c *APIClient) GetVehicle(ctx context.Context, id int) (Vehicle, error) {
	var out Vehicle
	err := c.get(ctx, fmt.Sprintf("/vehicles/%d", id), &out)
	return out, err
}

func (c *APIClient) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("vehicle api: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("vehicle api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Path: path, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("vehicle api: decode %s: %w", path, err)
	}
	return nil
}

// StatusError is returned when the upstream API answers with a non-200 status.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vehicle api: GET %s: unexpected status %d", e.Path, e.Code)
}

// ── Plain functions ──────────────────────────────────────────────────────────

// CalculateRange returns how far v can travel on its remaining fuel.
func CalculateRange(v Vehicle) float64 {
	return v.RemainingFuel * v.GasMileage
}

// CurrentLocation reports where the caller is. There is no GPS on a server,
// so it is always the origin.
func CurrentLocation(context.Context) (Coordinates, error) {
	return Coordinates{0, 0}, nil
}

// ── TripManager ──────────────────────────────────────────────────────────────

// DefaultAverageSpeed is the cruising speed TripManager assumes, in km/h.
const DefaultAverageSpeed = 80.0

const earthRadiusKm = 6371.0

// TripManager estimates arrival times. It is registered as an instance, so
// each resolution yields a new one.
type TripManager struct {
	AverageSpeed float64 // km/h
}

func NewTripManager() *TripManager {
	return &TripManager{AverageSpeed: DefaultAverageSpeed}
}

// Distance returns the great-circle distance between start and end in km.
func (m *TripManager) Distance(start, end Coordinates) float64 {
	lat1, lat2 := radians(start[0]), radians(end[0])
	dLat := lat2 - lat1
	dLon := radians(end[1] - start[1])

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// CalculateArrival estimates when a trip from start to end leaving at
// departure will arrive.
func (m *TripManager) CalculateArrival(start, end Coordinates, departure time.Time) time.Time {
	if m.AverageSpeed <= 0 {
		return departure
	}
	hours := m.Distance(start, end) / m.AverageSpeed
	return departure.Add(time.Duration(hours * float64(time.Hour)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
