package model

import (
	"time"

	"counting-down-back/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FlightStatus string

const (
	FlightDraft     FlightStatus = "DRAFT"
	FlightActive    FlightStatus = "ACTIVE"
	FlightCancelled FlightStatus = "CANCELLED"
)

var validFlightStatuses = map[FlightStatus]struct{}{
	FlightDraft:     {},
	FlightActive:    {},
	FlightCancelled: {},
}

func ParseFlightStatus(s string) (FlightStatus, error) {
	fs := FlightStatus(s)
	if _, ok := validFlightStatuses[fs]; !ok {
		return "", shared.InvalidInputf("unknown flight status %q", s)
	}
	return fs, nil
}

type Flight struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FlightNumber       string        `bson:"flight_number" json:"flight_number"`
	DepartureAirportID bson.ObjectID `bson:"departure_airport_id" json:"departure_airport_id"`
	ArrivalAirportID   bson.ObjectID `bson:"arrival_airport_id" json:"arrival_airport_id"`
	DepartureAt        time.Time     `bson:"departure_at" json:"departure_at"`
	ArrivalAt          time.Time     `bson:"arrival_at" json:"arrival_at"`
	Status             FlightStatus  `bson:"status" json:"status"`
	CreatedAt          time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt          *time.Time    `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type FlightCreate struct {
	FlightNumber       string       `json:"flight_number"`
	DepartureAirportID string       `json:"departure_airport_id"`
	ArrivalAirportID   string       `json:"arrival_airport_id"`
	DepartureAt        time.Time    `json:"departure_at"`
	ArrivalAt          time.Time    `json:"arrival_at"`
	Status             FlightStatus `json:"status"`
}

type FlightUpdate struct {
	FlightNumber *string       `json:"flight_number"`
	DepartureAt  *time.Time    `json:"departure_at"`
	ArrivalAt    *time.Time    `json:"arrival_at"`
	Status       *FlightStatus `json:"status"`
}

// Airport — справочник аэропортов, заполняется отдельно
type Airport struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ICAO        string        `bson:"icao" json:"icao"`
	IATA        string        `bson:"iata" json:"iata"`
	Name        string        `bson:"name" json:"name"`
	City        string        `bson:"city" json:"city"`
	Country     string        `bson:"country" json:"country"`
	Coordinates [2]float64    `bson:"coordinates" json:"coordinates"`
}
