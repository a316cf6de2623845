package models

import "fmt"

// AisleMarker is the canonical grid cell label for a walkway cell.
// Legacy layouts use other markers; they are normalized at the API boundary.
const AisleMarker = ""

// SeatStatus represents the live status of a seat on a schedule
type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusBooked    SeatStatus = "BOOKED"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusBlocked   SeatStatus = "BLOCKED"
)

// SeatCategory classifies a seat's position. Informational only; it never
// affects booking rules.
type SeatCategory string

const (
	SeatCategoryWindow SeatCategory = "WINDOW"
	SeatCategoryAisle  SeatCategory = "AISLE"
	SeatCategoryMiddle SeatCategory = "MIDDLE"
	SeatCategoryBerth  SeatCategory = "BERTH"
)

// Seat is a template-scoped seat descriptor. It carries no booking state.
type Seat struct {
	SeatNumber   string       `json:"seatNumber"`
	Row          int          `json:"row"`
	Column       int          `json:"column"`
	Category     SeatCategory `json:"category"`
	BasePrice    float64      `json:"basePrice"`
	Currency     string       `json:"currency"`
	IsAccessible bool         `json:"isAccessible"`
}

// SeatLayoutTemplate is a bus's reusable seat-grid definition.
// Invariant: every non-aisle cell in Grid appears exactly once in Seats and
// every Seats entry matches its (Row, Column) cell.
type SeatLayoutTemplate struct {
	LayoutID string     `json:"layoutId"`
	Name     string     `json:"name"`
	Rows     int        `json:"rows"`
	Columns  int        `json:"columns"`
	Grid     [][]string `json:"grid"`
	Seats    []Seat     `json:"seats"`
}

// SeatByNumber returns the template seat with the given number.
// Seat numbers are case-sensitive; "1A" and "1a" are distinct.
func (t *SeatLayoutTemplate) SeatByNumber(seatNumber string) (*Seat, bool) {
	for i := range t.Seats {
		if t.Seats[i].SeatNumber == seatNumber {
			return &t.Seats[i], true
		}
	}
	return nil, false
}

// ScheduledSeat is a seat on a schedule's cloned layout, carrying live status.
// Invariant: OccupantGender and BookingRef are both set iff Status is BOOKED.
type ScheduledSeat struct {
	Seat
	Status         SeatStatus `json:"status"`
	OccupantGender *Gender    `json:"occupantGender,omitempty"`
	BookingRef     *string    `json:"bookingRef,omitempty"`
}

// ScheduleSeatLayout is a per-schedule copy of a template. It is created once
// at schedule creation and never re-synced from the template afterwards.
type ScheduleSeatLayout struct {
	InstanceID string          `json:"instanceId"`
	LayoutID   string          `json:"layoutId"`
	Rows       int             `json:"rows"`
	Columns    int             `json:"columns"`
	Grid       [][]string      `json:"grid"`
	Seats      []ScheduledSeat `json:"seats"`
}

// SeatByNumber returns the scheduled seat with the given number.
func (l *ScheduleSeatLayout) SeatByNumber(seatNumber string) (*ScheduledSeat, bool) {
	for i := range l.Seats {
		if l.Seats[i].SeatNumber == seatNumber {
			return &l.Seats[i], true
		}
	}
	return nil, false
}

// AvailableSeatCount returns the number of seats currently AVAILABLE.
func (l *ScheduleSeatLayout) AvailableSeatCount() int {
	count := 0
	for i := range l.Seats {
		if l.Seats[i].Status == SeatStatusAvailable {
			count++
		}
	}
	return count
}

// LayoutErrorKind identifies the class of a layout validation failure
type LayoutErrorKind string

const (
	LayoutShapeMismatch LayoutErrorKind = "SHAPE_MISMATCH"
	LayoutDuplicateSeat LayoutErrorKind = "DUPLICATE_SEAT"
	LayoutOrphanSeat    LayoutErrorKind = "ORPHAN_SEAT"
	LayoutUnlabeledSeat LayoutErrorKind = "UNLABELED_SEAT"
)

// LayoutError reports a structural problem in a seat layout template. It is
// returned, never panicked, so the admin UI can point at the offending cell.
type LayoutError struct {
	Kind       LayoutErrorKind
	SeatNumber string
	Row        int
	Column     int
	Detail     string
}

func (e *LayoutError) Error() string {
	switch e.Kind {
	case LayoutShapeMismatch:
		return fmt.Sprintf("seat layout shape mismatch: %s", e.Detail)
	case LayoutDuplicateSeat:
		return fmt.Sprintf("duplicate seat %q: %s", e.SeatNumber, e.Detail)
	case LayoutOrphanSeat:
		return fmt.Sprintf("orphan seat %q: %s", e.SeatNumber, e.Detail)
	case LayoutUnlabeledSeat:
		return fmt.Sprintf("unlabeled seat cell %q at row %d column %d", e.SeatNumber, e.Row, e.Column)
	}
	return fmt.Sprintf("invalid seat layout: %s", e.Detail)
}
