package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

// BusService handles bus registration. A bus exclusively owns its seat
// layout template, so template normalization and validation happen here
// before anything is stored.
type BusService struct {
	buses     *database.BusRepository
	companies *database.CompanyRepository
	layouts   *SeatLayoutService
}

// NewBusService creates a new bus service
func NewBusService(buses *database.BusRepository, companies *database.CompanyRepository, layouts *SeatLayoutService) *BusService {
	return &BusService{
		buses:     buses,
		companies: companies,
		layouts:   layouts,
	}
}

// CreateBus registers a bus under a company with a validated seat layout
func (s *BusService) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.companies.GetByID(req.CompanyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", req.CompanyID, err)
	}

	template, err := s.layouts.NormalizeLayoutInput(&req.SeatLayout)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bus := &models.Bus{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		BusType:            models.BusType(req.BusType),
		RegistrationNumber: req.RegistrationNumber,
		Operator:           req.Operator,
		CompanyID:          req.CompanyID,
		Amenities:          req.Amenities,
		SeatLayout:         *template,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.buses.Save(bus); err != nil {
		return nil, fmt.Errorf("failed to save bus: %w", err)
	}
	return bus, nil
}

// UpdateBus applies a partial update. Replacing the seat layout template
// never touches schedules already cloned from the old one.
func (s *BusService) UpdateBus(id string, req *models.UpdateBusRequest) (*models.Bus, error) {
	bus, err := s.buses.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		bus.Name = *req.Name
	}
	if req.BusType != nil {
		bus.BusType = models.BusType(*req.BusType)
	}
	if req.RegistrationNumber != nil {
		bus.RegistrationNumber = *req.RegistrationNumber
	}
	if req.Operator != nil {
		bus.Operator = *req.Operator
	}
	if req.Amenities != nil {
		bus.Amenities = req.Amenities
	}
	if req.SeatLayout != nil {
		template, err := s.layouts.NormalizeLayoutInput(req.SeatLayout)
		if err != nil {
			return nil, err
		}
		bus.SeatLayout = *template
	}
	bus.UpdatedAt = time.Now()

	if err := s.buses.Save(bus); err != nil {
		return nil, fmt.Errorf("failed to save bus: %w", err)
	}
	return bus, nil
}

// GetBus retrieves a bus by id
func (s *BusService) GetBus(id string) (*models.Bus, error) {
	return s.buses.GetByID(id)
}

// ListBuses retrieves all buses
func (s *BusService) ListBuses() ([]models.Bus, error) {
	return s.buses.List()
}

// ListBusesByCompany retrieves a company's fleet
func (s *BusService) ListBusesByCompany(companyID string) ([]models.Bus, error) {
	return s.buses.ListByCompany(companyID)
}

// DeleteBus removes a bus and the seat layout template it owns
func (s *BusService) DeleteBus(id string) error {
	return s.buses.Delete(id)
}
