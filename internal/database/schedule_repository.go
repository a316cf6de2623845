package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// ScheduleRepository handles bus schedule persistence. Schedules are the
// contended documents, so reads expose the document version and writes go
// through the version check.
type ScheduleRepository struct {
	store DocumentStore
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(store DocumentStore) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

// GetByID retrieves a schedule and its current document version
func (r *ScheduleRepository) GetByID(id string) (*models.BusSchedule, int64, error) {
	var schedule models.BusSchedule
	version, err := r.store.GetByID(CollectionBusSchedules, id, &schedule)
	if err != nil {
		return nil, 0, err
	}
	return &schedule, version, nil
}

// List retrieves all schedules
func (r *ScheduleRepository) List() ([]models.BusSchedule, error) {
	var schedules []models.BusSchedule
	if err := r.store.List(CollectionBusSchedules, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListByRoute retrieves all schedules on a route
func (r *ScheduleRepository) ListByRoute(routeID string) ([]models.BusSchedule, error) {
	var schedules []models.BusSchedule
	if err := r.store.QueryByField(CollectionBusSchedules, "routeId", routeID, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Save upserts a schedule without a version check. Only for creation and
// administrative edits that do not touch seats.
func (r *ScheduleRepository) Save(schedule *models.BusSchedule) error {
	_, err := r.store.Put(CollectionBusSchedules, schedule.ID, schedule)
	return err
}

// SaveVersioned writes a schedule conditionally on its document version
// and returns the new version
func (r *ScheduleRepository) SaveVersioned(schedule *models.BusSchedule, expectedVersion int64) (int64, error) {
	return r.store.PutVersioned(CollectionBusSchedules, schedule.ID, schedule, expectedVersion)
}

// Delete removes a schedule
func (r *ScheduleRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionBusSchedules, id)
}
