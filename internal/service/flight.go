package service

import (
	"context"
	"time"

	"counting-down-back/internal/model"
	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FlightStore interface {
	List(ctx context.Context) ([]model.Flight, error)
	ListActive(ctx context.Context) ([]model.Flight, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.Flight, error)
	MostRecentActive(ctx context.Context) (*model.Flight, error)
	Create(ctx context.Context, flight model.Flight) (*model.Flight, error)
	Update(ctx context.Context, id bson.ObjectID, upd model.FlightUpdate, now time.Time) (*model.Flight, error)
	Delete(ctx context.Context, id bson.ObjectID) (bool, error)
}

type AirportStore interface {
	List(ctx context.Context) ([]model.Airport, error)
	Search(ctx context.Context, query string) ([]model.Airport, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Airport, error)
	GetByCode(ctx context.Context, code string) (*model.Airport, error)
}

type FlightService struct {
	flights  FlightStore
	airports AirportStore
}

func NewFlightService(flights FlightStore, airports AirportStore) *FlightService {
	return &FlightService{flights: flights, airports: airports}
}

func (s *FlightService) List(ctx context.Context) ([]model.Flight, error) {
	return s.flights.List(ctx)
}

func (s *FlightService) ListActive(ctx context.Context) ([]model.Flight, error) {
	return s.flights.ListActive(ctx)
}

func (s *FlightService) Get(ctx context.Context, id string) (*model.Flight, error) {
	oid, err := parseObjectID(id, "flight")
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, shared.NotFoundf("flight", id)
	}
	return flight, nil
}

func (s *FlightService) MostRecentActive(ctx context.Context) (*model.Flight, error) {
	flight, err := s.flights.MostRecentActive(ctx)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, shared.NotFoundf("flight", "active")
	}
	return flight, nil
}

// Create проверяет, что оба аэропорта существуют в справочнике
func (s *FlightService) Create(ctx context.Context, in model.FlightCreate) (*model.Flight, error) {
	if in.FlightNumber == "" {
		return nil, shared.InvalidInputf("flight number must not be empty")
	}
	if !in.ArrivalAt.After(in.DepartureAt) {
		return nil, shared.InvalidInputf("arrival must be after departure")
	}
	status := in.Status
	if status == "" {
		status = model.FlightDraft
	} else if _, err := model.ParseFlightStatus(string(status)); err != nil {
		return nil, err
	}

	depID, err := s.resolveAirport(ctx, in.DepartureAirportID)
	if err != nil {
		return nil, err
	}
	arrID, err := s.resolveAirport(ctx, in.ArrivalAirportID)
	if err != nil {
		return nil, err
	}

	return s.flights.Create(ctx, model.Flight{
		FlightNumber:       in.FlightNumber,
		DepartureAirportID: depID,
		ArrivalAirportID:   arrID,
		DepartureAt:        in.DepartureAt.UTC(),
		ArrivalAt:          in.ArrivalAt.UTC(),
		Status:             status,
		CreatedAt:          utcNow(),
	})
}

func (s *FlightService) resolveAirport(ctx context.Context, id string) (bson.ObjectID, error) {
	oid, err := parseObjectID(id, "airport")
	if err != nil {
		return bson.ObjectID{}, err
	}
	airport, err := s.airports.GetByID(ctx, oid)
	if err != nil {
		return bson.ObjectID{}, err
	}
	if airport == nil {
		return bson.ObjectID{}, shared.NotFoundf("airport", id)
	}
	return oid, nil
}

func (s *FlightService) Update(ctx context.Context, id string, upd model.FlightUpdate) (*model.Flight, error) {
	oid, err := parseObjectID(id, "flight")
	if err != nil {
		return nil, err
	}
	if upd.Status != nil {
		if _, err := model.ParseFlightStatus(string(*upd.Status)); err != nil {
			return nil, err
		}
	}
	flight, err := s.flights.Update(ctx, oid, upd, utcNow())
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, shared.NotFoundf("flight", id)
	}
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id, "flight")
	if err != nil {
		return err
	}
	deleted, err := s.flights.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NotFoundf("flight", id)
	}
	return nil
}

func (s *FlightService) ListAirports(ctx context.Context) ([]model.Airport, error) {
	return s.airports.List(ctx)
}

func (s *FlightService) SearchAirports(ctx context.Context, query string) ([]model.Airport, error) {
	if query == "" {
		return s.airports.List(ctx)
	}
	return s.airports.Search(ctx, query)
}

func (s *FlightService) GetAirportByCode(ctx context.Context, code string) (*model.Airport, error) {
	airport, err := s.airports.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if airport == nil {
		return nil, shared.NotFoundf("airport", code)
	}
	return airport, nil
}
