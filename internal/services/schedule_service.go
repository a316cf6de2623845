package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

// ScheduleService handles schedule lifecycle. Creating a schedule clones the
// bus's seat layout template exactly once; from then on the schedule's seat
// map lives its own life under the booking service.
type ScheduleService struct {
	schedules *database.ScheduleRepository
	buses     *database.BusRepository
	routes    *database.RouteRepository
	layouts   *SeatLayoutService
	logger    *logrus.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	schedules *database.ScheduleRepository,
	buses *database.BusRepository,
	routes *database.RouteRepository,
	layouts *SeatLayoutService,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		buses:     buses,
		routes:    routes,
		layouts:   layouts,
		logger:    logger,
	}
}

// CreateSchedule creates a departure for a bus on a route
func (s *ScheduleService) CreateSchedule(req *models.CreateScheduleRequest) (*models.BusSchedule, error) {
	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("invalid departureTime: %w", err)
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("invalid arrivalTime: %w", err)
	}
	if !arrival.After(departure) {
		return nil, fmt.Errorf("arrivalTime must be after departureTime")
	}

	route, err := s.routes.GetByID(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", req.RouteID, err)
	}
	bus, err := s.buses.GetByID(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("bus %s: %w", req.BusID, err)
	}

	layout, err := s.layouts.CloneForSchedule(&bus.SeatLayout)
	if err != nil {
		return nil, fmt.Errorf("bus %s has an invalid seat layout: %w", bus.ID, err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "PKR"
	}

	now := time.Now()
	schedule := &models.BusSchedule{
		ID:                 uuid.New().String(),
		RouteID:            route.ID,
		BusID:              bus.ID,
		CompanyID:          bus.CompanyID,
		DepartureTime:      departure,
		ArrivalTime:        arrival,
		Date:               departure.Format("2006-01-02"),
		BusType:            bus.BusType,
		Fare:               req.Fare,
		Currency:           currency,
		Features:           req.Features,
		CancellationPolicy: req.CancellationPolicy,
		SeatLayout:         *layout,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	schedule.RefreshSeatCounts()

	if err := s.schedules.Save(schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"bus_id":      bus.ID,
		"route_id":    route.ID,
		"seats":       schedule.TotalSeats,
	}).Info("Schedule created")
	return schedule, nil
}

// GetSchedule retrieves a schedule by id
func (s *ScheduleService) GetSchedule(id string) (*models.BusSchedule, error) {
	schedule, _, err := s.schedules.GetByID(id)
	return schedule, err
}

// ListSchedules retrieves all schedules
func (s *ScheduleService) ListSchedules() ([]models.BusSchedule, error) {
	return s.schedules.List()
}

// ListSchedulesByRoute retrieves all schedules on a route
func (s *ScheduleService) ListSchedulesByRoute(routeID string) ([]models.BusSchedule, error) {
	return s.schedules.ListByRoute(routeID)
}

// SearchSchedules retrieves schedules on a route, optionally narrowed to a
// single travel date (YYYY-MM-DD)
func (s *ScheduleService) SearchSchedules(routeID, date string) ([]models.BusSchedule, error) {
	schedules, err := s.schedules.ListByRoute(routeID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return schedules, nil
	}
	matched := make([]models.BusSchedule, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.Date == date {
			matched = append(matched, schedule)
		}
	}
	return matched, nil
}

// SeatMap is the display projection of a schedule's seat layout
type SeatMap struct {
	ScheduleID     string           `json:"scheduleId"`
	Rows           int              `json:"rows"`
	Columns        int              `json:"columns"`
	AvailableSeats int              `json:"availableSeats"`
	TotalSeats     int              `json:"totalSeats"`
	Cells          [][]RenderedCell `json:"cells"`
}

// GetSeatMap renders a schedule's seat grid for display
func (s *ScheduleService) GetSeatMap(id string) (*SeatMap, error) {
	schedule, _, err := s.schedules.GetByID(id)
	if err != nil {
		return nil, err
	}
	cells, err := s.layouts.RenderLayout(&schedule.SeatLayout)
	if err != nil {
		return nil, err
	}
	return &SeatMap{
		ScheduleID:     schedule.ID,
		Rows:           schedule.SeatLayout.Rows,
		Columns:        schedule.SeatLayout.Columns,
		AvailableSeats: schedule.AvailableSeats,
		TotalSeats:     schedule.TotalSeats,
		Cells:          cells,
	}, nil
}

// DeleteSchedule removes a schedule and its cloned seat layout with it
func (s *ScheduleService) DeleteSchedule(id string) error {
	return s.schedules.Delete(id)
}
