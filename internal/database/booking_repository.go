package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// BookingRepository handles booking persistence
type BookingRepository struct {
	store DocumentStore
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(store DocumentStore) *BookingRepository {
	return &BookingRepository{store: store}
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	var booking models.Booking
	if _, err := r.store.GetByID(CollectionBookings, id, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// List retrieves all bookings
func (r *BookingRepository) List() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.store.List(CollectionBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByUser retrieves all bookings made by a user
func (r *BookingRepository) ListByUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.store.QueryByField(CollectionBookings, "userId", userID, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBySchedule retrieves all bookings against a schedule
func (r *BookingRepository) ListBySchedule(scheduleID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.store.QueryByField(CollectionBookings, "scheduleId", scheduleID, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Save upserts a booking
func (r *BookingRepository) Save(booking *models.Booking) error {
	_, err := r.store.Put(CollectionBookings, booking.ID, booking)
	return err
}
