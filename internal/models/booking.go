package models

import (
	"fmt"
	"strings"
	"time"
)

// Gender of a passenger occupying a seat
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Passenger holds per-seat passenger details within a booking
type Passenger struct {
	Name       string `json:"name"`
	Gender     Gender `json:"gender"`
	SeatNumber string `json:"seatNumber"`
}

// Booking references a schedule and the seats it holds. It mutates seat
// status through the booking service but does not own the seat records.
type Booking struct {
	ID            string        `json:"id"`
	ScheduleID    string        `json:"scheduleId"`
	UserID        string        `json:"userId,omitempty"`
	SeatNumbers   []string      `json:"seatNumbers"`
	Passengers    []Passenger   `json:"passengers"`
	Status        BookingStatus `json:"status"`
	TotalAmount   float64       `json:"totalAmount"`
	Currency      string        `json:"currency"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	PaymentRef    *string       `json:"paymentRef,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
}

// Confirm transitions the booking PENDING -> CONFIRMED.
func (b *Booking) Confirm() error {
	if b.Status != BookingStatusPending {
		return NewInvalidTransition(b.Status, BookingStatusConfirmed)
	}
	b.Status = BookingStatusConfirmed
	b.UpdatedAt = time.Now()
	return nil
}

// Cancel transitions the booking to CANCELLED from PENDING or CONFIRMED.
func (b *Booking) Cancel() error {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return NewInvalidTransition(b.Status, BookingStatusCancelled)
	}
	now := time.Now()
	b.Status = BookingStatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// Complete transitions the booking CONFIRMED -> COMPLETED.
func (b *Booking) Complete() error {
	if b.Status != BookingStatusConfirmed {
		return NewInvalidTransition(b.Status, BookingStatusCompleted)
	}
	b.Status = BookingStatusCompleted
	b.UpdatedAt = time.Now()
	return nil
}

// ConfirmPayment records a successful gateway charge on the booking.
func (b *Booking) ConfirmPayment(method, reference string) {
	b.PaymentStatus = PaymentStatusPaid
	b.PaymentMethod = &method
	b.PaymentRef = &reference
	b.UpdatedAt = time.Now()
}

// BookingErrorKind identifies the class of a booking failure
type BookingErrorKind string

const (
	BookingUnknownSeat       BookingErrorKind = "UNKNOWN_SEAT"
	BookingDuplicateSeat     BookingErrorKind = "DUPLICATE_SEAT"
	BookingSeatUnavailable   BookingErrorKind = "SEAT_UNAVAILABLE"
	BookingInvalidTransition BookingErrorKind = "INVALID_TRANSITION"
)

// BookingError reports a reservation or lifecycle failure. SeatUnavailable
// carries the full set of conflicting seats so callers can offer
// alternatives in one round trip.
type BookingError struct {
	Kind  BookingErrorKind
	Seats []string
	From  BookingStatus
	To    BookingStatus
}

func (e *BookingError) Error() string {
	switch e.Kind {
	case BookingUnknownSeat:
		return fmt.Sprintf("unknown seat(s): %s", strings.Join(e.Seats, ", "))
	case BookingDuplicateSeat:
		return fmt.Sprintf("seat(s) requested more than once: %s", strings.Join(e.Seats, ", "))
	case BookingSeatUnavailable:
		return fmt.Sprintf("seat(s) not available: %s", strings.Join(e.Seats, ", "))
	case BookingInvalidTransition:
		return fmt.Sprintf("invalid booking transition %s -> %s", e.From, e.To)
	}
	return "booking error"
}

// NewInvalidTransition builds the error for an illegal state change.
func NewInvalidTransition(from, to BookingStatus) *BookingError {
	return &BookingError{Kind: BookingInvalidTransition, From: from, To: to}
}

// SeatSelection pairs a requested seat with its passenger. Occupant gender
// on a seat is binary by the seating rules; OTHER exists only on profiles.
type SeatSelection struct {
	SeatNumber    string `json:"seatNumber" binding:"required"`
	PassengerName string `json:"passengerName" binding:"required"`
	Gender        Gender `json:"gender" binding:"required,oneof=MALE FEMALE"`
}

// CreateBookingRequest is the payload for reserving seats on a schedule.
// Seat numbers form a set: one passenger per physical seat.
type CreateBookingRequest struct {
	ScheduleID string          `json:"scheduleId" binding:"required"`
	UserID     string          `json:"userId"`
	Seats      []SeatSelection `json:"seats" binding:"required,min=1,max=10,unique=SeatNumber,dive"`
}
