package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// BusRepository handles bus persistence
type BusRepository struct {
	store DocumentStore
}

// NewBusRepository creates a new bus repository
func NewBusRepository(store DocumentStore) *BusRepository {
	return &BusRepository{store: store}
}

// GetByID retrieves a bus by id
func (r *BusRepository) GetByID(id string) (*models.Bus, error) {
	var bus models.Bus
	if _, err := r.store.GetByID(CollectionBuses, id, &bus); err != nil {
		return nil, err
	}
	return &bus, nil
}

// List retrieves all buses
func (r *BusRepository) List() ([]models.Bus, error) {
	var buses []models.Bus
	if err := r.store.List(CollectionBuses, &buses); err != nil {
		return nil, err
	}
	return buses, nil
}

// ListByCompany retrieves all buses operated by a company
func (r *BusRepository) ListByCompany(companyID string) ([]models.Bus, error) {
	var buses []models.Bus
	if err := r.store.QueryByField(CollectionBuses, "companyId", companyID, &buses); err != nil {
		return nil, err
	}
	return buses, nil
}

// Save upserts a bus
func (r *BusRepository) Save(bus *models.Bus) error {
	_, err := r.store.Put(CollectionBuses, bus.ID, bus)
	return err
}

// Delete removes a bus
func (r *BusRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionBuses, id)
}
