package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

// maxVersionRetries bounds the optimistic write loop. The per-schedule
// mutex already serializes writers in this process; retries only absorb
// writes from other instances.
const maxVersionRetries = 3

// BookingService is the only place seat statuses change after schedule
// creation. Reservation is all-or-nothing: the check and the commit run
// under a per-schedule lock and land with a version-checked write, so two
// requests racing for the same seat cannot both win.
type BookingService struct {
	bookings  *database.BookingRepository
	schedules *database.ScheduleRepository
	profiles  *database.UserProfileRepository
	routes    *database.RouteRepository
	logger    *logrus.Logger

	mu            sync.Mutex
	scheduleLocks map[string]*sync.Mutex
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings *database.BookingRepository,
	schedules *database.ScheduleRepository,
	profiles *database.UserProfileRepository,
	routes *database.RouteRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		schedules:     schedules,
		profiles:      profiles,
		routes:        routes,
		logger:        logger,
		scheduleLocks: make(map[string]*sync.Mutex),
	}
}

// scheduleLock returns the mutex guarding one schedule's seat map
func (s *BookingService) scheduleLock(scheduleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.scheduleLocks[scheduleID]
	if !ok {
		lock = &sync.Mutex{}
		s.scheduleLocks[scheduleID] = lock
	}
	return lock
}

// ReserveSeats creates a PENDING booking, flipping every requested seat to
// BOOKED in one atomic unit. Requests naming a seat more than once fail
// outright, unknown seats fail with the full unknown set, unavailable seats
// fail with the full conflict set, and in every case no seat state changes.
func (s *BookingService) ReserveSeats(req *models.CreateBookingRequest) (*models.Booking, error) {
	seen := make(map[string]bool, len(req.Seats))
	var duplicates []string
	for _, sel := range req.Seats {
		if seen[sel.SeatNumber] {
			duplicates = append(duplicates, sel.SeatNumber)
			continue
		}
		seen[sel.SeatNumber] = true
	}
	if len(duplicates) > 0 {
		return nil, &models.BookingError{Kind: models.BookingDuplicateSeat, Seats: duplicates}
	}

	lock := s.scheduleLock(req.ScheduleID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		schedule, version, err := s.schedules.GetByID(req.ScheduleID)
		if err != nil {
			return nil, err
		}

		var unknown, unavailable []string
		for _, sel := range req.Seats {
			seat, ok := schedule.SeatLayout.SeatByNumber(sel.SeatNumber)
			if !ok {
				unknown = append(unknown, sel.SeatNumber)
				continue
			}
			if seat.SeatNumber == models.AisleMarker || seat.Status != models.SeatStatusAvailable {
				unavailable = append(unavailable, sel.SeatNumber)
			}
		}
		if len(unknown) > 0 {
			return nil, &models.BookingError{Kind: models.BookingUnknownSeat, Seats: unknown}
		}
		if len(unavailable) > 0 {
			return nil, &models.BookingError{Kind: models.BookingSeatUnavailable, Seats: unavailable}
		}

		now := time.Now()
		booking := &models.Booking{
			ID:            uuid.New().String(),
			ScheduleID:    req.ScheduleID,
			UserID:        req.UserID,
			Status:        models.BookingStatusPending,
			Currency:      schedule.Currency,
			PaymentStatus: models.PaymentStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for _, sel := range req.Seats {
			seat, _ := schedule.SeatLayout.SeatByNumber(sel.SeatNumber)
			gender := sel.Gender
			bookingRef := booking.ID
			seat.Status = models.SeatStatusBooked
			seat.OccupantGender = &gender
			seat.BookingRef = &bookingRef

			booking.SeatNumbers = append(booking.SeatNumbers, sel.SeatNumber)
			booking.Passengers = append(booking.Passengers, models.Passenger{
				Name:       sel.PassengerName,
				Gender:     sel.Gender,
				SeatNumber: sel.SeatNumber,
			})
			booking.TotalAmount += seat.BasePrice
		}

		schedule.RefreshSeatCounts()
		schedule.UpdatedAt = now

		if _, err := s.schedules.SaveVersioned(schedule, version); err != nil {
			if errors.Is(err, database.ErrVersionConflict) {
				continue
			}
			return nil, fmt.Errorf("failed to save schedule seat map: %w", err)
		}

		if err := s.bookings.Save(booking); err != nil {
			return nil, fmt.Errorf("failed to save booking: %w", err)
		}

		s.mirrorBookingToProfile(booking, schedule)

		s.logger.WithFields(logrus.Fields{
			"booking_id":  booking.ID,
			"schedule_id": booking.ScheduleID,
			"seats":       booking.SeatNumbers,
		}).Info("Seats reserved")
		return booking, nil
	}

	return nil, fmt.Errorf("failed to reserve seats on schedule %s: %w", req.ScheduleID, database.ErrVersionConflict)
}

// ReleaseSeats cancels a booking and frees its seats. Idempotent: releasing
// an already cancelled booking is a no-op. Each seat is reset only if it
// still carries this booking's reference, so a stale release can never free
// a seat someone else has since booked.
func (s *BookingService) ReleaseSeats(bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return booking, nil
	}
	if err := booking.Cancel(); err != nil {
		return nil, err
	}

	lock := s.scheduleLock(booking.ScheduleID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		schedule, version, err := s.schedules.GetByID(booking.ScheduleID)
		if err != nil {
			return nil, err
		}

		for _, seatNumber := range booking.SeatNumbers {
			seat, ok := schedule.SeatLayout.SeatByNumber(seatNumber)
			if !ok || seat.BookingRef == nil || *seat.BookingRef != booking.ID {
				continue
			}
			seat.Status = models.SeatStatusAvailable
			seat.OccupantGender = nil
			seat.BookingRef = nil
		}

		schedule.RefreshSeatCounts()
		schedule.UpdatedAt = time.Now()

		if _, err := s.schedules.SaveVersioned(schedule, version); err != nil {
			if errors.Is(err, database.ErrVersionConflict) {
				continue
			}
			return nil, fmt.Errorf("failed to save schedule seat map: %w", err)
		}

		if err := s.bookings.Save(booking); err != nil {
			return nil, fmt.Errorf("failed to save booking: %w", err)
		}

		s.updateProfileBookingStatus(booking)

		s.logger.WithFields(logrus.Fields{
			"booking_id":  booking.ID,
			"schedule_id": booking.ScheduleID,
			"seats":       booking.SeatNumbers,
		}).Info("Seats released")
		return booking, nil
	}

	return nil, fmt.Errorf("failed to release seats on schedule %s: %w", booking.ScheduleID, database.ErrVersionConflict)
}

// ConfirmBooking transitions PENDING -> CONFIRMED. Seats are already BOOKED
// from reservation, so no seat state changes.
func (s *BookingService) ConfirmBooking(bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.Confirm(); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	s.updateProfileBookingStatus(booking)
	return booking, nil
}

// CompleteBooking transitions CONFIRMED -> COMPLETED after travel
func (s *BookingService) CompleteBooking(bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.Complete(); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	s.updateProfileBookingStatus(booking)
	return booking, nil
}

// UpdateSeatStatuses applies an administrative seat-state change (holds and
// out-of-service blocks). BOOKED seats are never touched; attempts to change
// one fail with the full conflict set.
func (s *BookingService) UpdateSeatStatuses(scheduleID string, req *models.SeatStatusUpdateRequest) (*models.BusSchedule, error) {
	lock := s.scheduleLock(scheduleID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		schedule, version, err := s.schedules.GetByID(scheduleID)
		if err != nil {
			return nil, err
		}

		var unknown, booked []string
		for _, seatNumber := range req.SeatNumbers {
			seat, ok := schedule.SeatLayout.SeatByNumber(seatNumber)
			if !ok {
				unknown = append(unknown, seatNumber)
				continue
			}
			if seat.Status == models.SeatStatusBooked {
				booked = append(booked, seatNumber)
			}
		}
		if len(unknown) > 0 {
			return nil, &models.BookingError{Kind: models.BookingUnknownSeat, Seats: unknown}
		}
		if len(booked) > 0 {
			return nil, &models.BookingError{Kind: models.BookingSeatUnavailable, Seats: booked}
		}

		for _, seatNumber := range req.SeatNumbers {
			seat, _ := schedule.SeatLayout.SeatByNumber(seatNumber)
			seat.Status = req.Status
			seat.OccupantGender = nil
			seat.BookingRef = nil
		}

		schedule.RefreshSeatCounts()
		schedule.UpdatedAt = time.Now()

		if _, err := s.schedules.SaveVersioned(schedule, version); err != nil {
			if errors.Is(err, database.ErrVersionConflict) {
				continue
			}
			return nil, fmt.Errorf("failed to save schedule seat map: %w", err)
		}
		return schedule, nil
	}

	return nil, fmt.Errorf("failed to update seats on schedule %s: %w", scheduleID, database.ErrVersionConflict)
}

// GetBooking retrieves a booking by id
func (s *BookingService) GetBooking(bookingID string) (*models.Booking, error) {
	return s.bookings.GetByID(bookingID)
}

// ListBookings retrieves all bookings
func (s *BookingService) ListBookings() ([]models.Booking, error) {
	return s.bookings.List()
}

// ListBookingsByUser retrieves a user's bookings
func (s *BookingService) ListBookingsByUser(userID string) ([]models.Booking, error) {
	return s.bookings.ListByUser(userID)
}

// ListBookingsBySchedule retrieves all bookings against a schedule
func (s *BookingService) ListBookingsBySchedule(scheduleID string) ([]models.Booking, error) {
	return s.bookings.ListBySchedule(scheduleID)
}

// mirrorBookingToProfile appends a compact summary to the user's booking
// history. Best effort: a profile write failure never fails the booking.
func (s *BookingService) mirrorBookingToProfile(booking *models.Booking, schedule *models.BusSchedule) {
	if booking.UserID == "" {
		return
	}
	profile, err := s.profiles.GetByID(booking.UserID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", booking.UserID).Warn("Could not load profile for booking history")
		return
	}

	summary := models.BookingSummary{
		ID:     booking.ID,
		Date:   schedule.Date,
		Status: booking.Status,
		Amount: booking.TotalAmount,
	}
	if route, err := s.routes.GetByID(schedule.RouteID); err == nil {
		summary.From = route.From
		summary.To = route.To
	}

	profile.BookingHistory = append(profile.BookingHistory, summary)
	profile.UpdatedAt = time.Now()
	if err := s.profiles.Save(profile); err != nil {
		s.logger.WithError(err).WithField("user_id", booking.UserID).Warn("Could not update profile booking history")
	}
}

// updateProfileBookingStatus keeps the mirrored history entry in step with
// the booking's lifecycle. Best effort, same as the mirror itself.
func (s *BookingService) updateProfileBookingStatus(booking *models.Booking) {
	if booking.UserID == "" {
		return
	}
	profile, err := s.profiles.GetByID(booking.UserID)
	if err != nil {
		return
	}
	for i := range profile.BookingHistory {
		if profile.BookingHistory[i].ID == booking.ID {
			profile.BookingHistory[i].Status = booking.Status
			profile.UpdatedAt = time.Now()
			if err := s.profiles.Save(profile); err != nil {
				s.logger.WithError(err).WithField("user_id", booking.UserID).Warn("Could not update profile booking history")
			}
			return
		}
	}
}
