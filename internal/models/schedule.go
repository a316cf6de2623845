package models

import "time"

// BusSchedule represents one departure of a bus on a route. Its seat layout
// is an independent copy of the bus's template, cloned exactly once at
// creation time; later template edits never touch an existing schedule.
type BusSchedule struct {
	ID                 string             `json:"id"`
	RouteID            string             `json:"routeId"`
	BusID              string             `json:"busId"`
	CompanyID          string             `json:"companyId"`
	DepartureTime      time.Time          `json:"departureTime"`
	ArrivalTime        time.Time          `json:"arrivalTime"`
	Date               string             `json:"date"` // YYYY-MM-DD
	BusType            BusType            `json:"busType"`
	Fare               float64            `json:"fare"`
	Currency           string             `json:"currency"`
	TotalSeats         int                `json:"totalSeats"`
	AvailableSeats     int                `json:"availableSeats"`
	Features           []string           `json:"features,omitempty"`
	CancellationPolicy string             `json:"cancellationPolicy,omitempty"`
	SeatLayout         ScheduleSeatLayout `json:"seatLayout"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// RefreshSeatCounts recomputes the cached availability counters from the
// layout. Called after every seat-status change.
func (s *BusSchedule) RefreshSeatCounts() {
	s.TotalSeats = len(s.SeatLayout.Seats)
	s.AvailableSeats = s.SeatLayout.AvailableSeatCount()
}

// CreateScheduleRequest represents the request to schedule a departure
type CreateScheduleRequest struct {
	RouteID            string   `json:"routeId" binding:"required"`
	BusID              string   `json:"busId" binding:"required"`
	DepartureTime      string   `json:"departureTime" binding:"required"` // RFC 3339
	ArrivalTime        string   `json:"arrivalTime" binding:"required"`   // RFC 3339
	Fare               float64  `json:"fare" binding:"required,gt=0"`
	Currency           string   `json:"currency"`
	Features           []string `json:"features"`
	CancellationPolicy string   `json:"cancellationPolicy"`
}

// SeatStatusUpdateRequest is an administrative seat-state change on a
// schedule (RESERVED holds before sale opens, BLOCKED for out of service).
type SeatStatusUpdateRequest struct {
	SeatNumbers []string   `json:"seatNumbers" binding:"required,min=1"`
	Status      SeatStatus `json:"status" binding:"required,oneof=AVAILABLE RESERVED BLOCKED"`
}
