package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// SeatLayoutRepository handles the standalone seat layout template library
type SeatLayoutRepository struct {
	store DocumentStore
}

// NewSeatLayoutRepository creates a new seat layout repository
func NewSeatLayoutRepository(store DocumentStore) *SeatLayoutRepository {
	return &SeatLayoutRepository{store: store}
}

// GetByID retrieves a layout template by id
func (r *SeatLayoutRepository) GetByID(id string) (*models.SeatLayoutTemplate, error) {
	var layout models.SeatLayoutTemplate
	if _, err := r.store.GetByID(CollectionSeatLayouts, id, &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// List retrieves all layout templates
func (r *SeatLayoutRepository) List() ([]models.SeatLayoutTemplate, error) {
	var layouts []models.SeatLayoutTemplate
	if err := r.store.List(CollectionSeatLayouts, &layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}

// Save upserts a layout template
func (r *SeatLayoutRepository) Save(layout *models.SeatLayoutTemplate) error {
	_, err := r.store.Put(CollectionSeatLayouts, layout.LayoutID, layout)
	return err
}

// Delete removes a layout template
func (r *SeatLayoutRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionSeatLayouts, id)
}
