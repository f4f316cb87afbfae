package vehicles

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	gohttp "github.com/km-arc/go-decoupler/framework/http"
	"github.com/km-arc/go-decoupler/framework/inject"
	"github.com/km-arc/go-decoupler/framework/locator"
	"github.com/km-arc/go-decoupler/framework/routing"
)

// Routes mounts the fleet endpoints:
//
//	GET /vehicles             list of vehicles with their range
//	GET /vehicles/{id}        dashboard: vehicle, range, location and arrival
//	GET /vehicles/{id}/range  range only
func Routes(r *routing.Router) {
	r.Prefix("/vehicles", func(r *routing.Router) {
		r.Handle(http.MethodGet, "/", inject.WithServices[string](inject.ServicesFunc(
			[]string{KeyAPIClient, KeyCalculateRange},
			listVehicles,
		)))
		r.Handle(http.MethodGet, "/{id}", inject.WithServices[string](&Dashboard{}))
		r.Get("/{id}/range", vehicleRange)
	})
}

// VehicleSummary is one entry of the vehicle list.
type VehicleSummary struct {
	Vehicle
	Range float64 `json:"range"`
}

func listVehicles(w http.ResponseWriter, r *http.Request, s locator.Resolved) {
	res := gohttp.NewResponse(w)

	client, err := buildClient(s.At(0))
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	calculateRange, ok := s.At(1).(func(Vehicle) float64)
	if !ok {
		res.ServerError(fmt.Sprintf("%s is %T", KeyCalculateRange, s.At(1)))
		return
	}

	list, err := client.ListVehicles(r.Context())
	if err != nil {
		upstreamError(res, err)
		return
	}
	out := make([]VehicleSummary, 0, len(list))
	for _, v := range list {
		out = append(out, VehicleSummary{Vehicle: v, Range: calculateRange(v)})
	}
	res.Success(out)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

// Dashboard renders one vehicle with its range and an arrival estimate from
// the caller's current location. The optional ?speed= query (km/h, positive)
// tunes the trip manager of this request only.
type Dashboard struct{}

// DashboardView is the body of a dashboard response.
type DashboardView struct {
	Vehicle  Vehicle     `json:"vehicle"`
	Range    float64     `json:"range"`
	Location Coordinates `json:"location"`
	Distance float64     `json:"distance"`
	Arrival  time.Time   `json:"arrival"`
}

func (*Dashboard) Dependencies() any {
	return map[string]string{
		KeyAPIClient:       "api",
		KeyCalculateRange:  "calculateRange",
		KeyCurrentLocation: "currentLocation",
		KeyTripManager:     "tripManager",
		KeyClock:           "clock",
	}
}

func (*Dashboard) ServeWithServices(w http.ResponseWriter, r *http.Request, s locator.Resolved) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	id, err := strconv.Atoi(req.RouteParam("id"))
	if err != nil {
		res.BadRequest("vehicle id must be an integer")
		return
	}

	api, _ := s.Get("api")
	client, err := buildClient(api)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	calculateRange, err := named[func(Vehicle) float64](s, "calculateRange")
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	currentLocation, err := named[func(context.Context) (Coordinates, error)](s, "currentLocation")
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	trips, err := named[*TripManager](s, "tripManager")
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	now, err := named[func() time.Time](s, "clock")
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	speed, err := req.QueryFloat("speed", trips.AverageSpeed)
	if err != nil || speed <= 0 || math.IsInf(speed, 0) || math.IsNaN(speed) {
		res.BadRequest("speed must be a positive number")
		return
	}
	trips.AverageSpeed = speed

	vehicle, err := client.GetVehicle(r.Context(), id)
	if err != nil {
		upstreamError(res, err)
		return
	}
	here, err := currentLocation(r.Context())
	if err != nil {
		res.ServerError(err.Error())
		return
	}

	res.Success(DashboardView{
		Vehicle:  vehicle,
		Range:    calculateRange(vehicle),
		Location: here,
		Distance: trips.Distance(vehicle.LastLocation, here),
		Arrival:  trips.CalculateArrival(vehicle.LastLocation, here, now()),
	})
}

// ── Range ────────────────────────────────────────────────────────────────────

func vehicleRange(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	id, err := strconv.Atoi(req.RouteParam("id"))
	if err != nil {
		res.BadRequest("vehicle id must be an integer")
		return
	}

	err = inject.Inject[string](r.Context(), []string{KeyAPIClient, KeyCalculateRange}, func(s locator.Resolved) error {
		client, err := buildClient(s.At(0))
		if err != nil {
			return err
		}
		calculateRange, ok := s.At(1).(func(Vehicle) float64)
		if !ok {
			return fmt.Errorf("%s is %T", KeyCalculateRange, s.At(1))
		}
		vehicle, err := client.GetVehicle(r.Context(), id)
		if err != nil {
			upstreamError(res, err)
			return nil
		}
		res.Success(map[string]any{"id": vehicle.ID, "range": calculateRange(vehicle)})
		return nil
	})
	if err != nil {
		res.ServerError(err.Error())
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// buildClient invokes the bound APIClient constructor.
func buildClient(v any) (*APIClient, error) {
	build, ok := v.(*locator.Bound)
	if !ok {
		return nil, fmt.Errorf("%s resolved to %T, want *locator.Bound", KeyAPIClient, v)
	}
	out, err := build.Invoke()
	if err != nil {
		return nil, err
	}
	client, ok := out.(*APIClient)
	if !ok {
		return nil, fmt.Errorf("%s built %T, want *APIClient", KeyAPIClient, out)
	}
	return client, nil
}

func named[T any](s locator.Resolved, alias string) (T, error) {
	var zero T
	v, ok := s.Get(alias)
	if !ok {
		return zero, fmt.Errorf("service %q was not resolved", alias)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, want %T", alias, v, zero)
	}
	return t, nil
}

func upstreamError(res *gohttp.Response, err error) {
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		res.NotFound("vehicle not found")
		return
	}
	res.Error(http.StatusBadGateway, err.Error())
}
