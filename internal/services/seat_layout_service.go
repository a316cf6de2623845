package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

// SeatLayoutService owns the seat-grid template format: validation of grid
// integrity, normalization of the legacy input shapes, and the one-time
// template to schedule clone.
type SeatLayoutService struct {
	repo *database.SeatLayoutRepository
}

// NewSeatLayoutService creates a new seat layout service
func NewSeatLayoutService(repo *database.SeatLayoutRepository) *SeatLayoutService {
	return &SeatLayoutService{
		repo: repo,
	}
}

// ValidateTemplate checks the grid/seat invariant: dimensions match
// rows x columns, every non-aisle cell is backed by exactly one seats entry
// at that position, and every seats entry has its cell. Rows shorter than
// columns are rejected rather than padded, so seat positions stay unambiguous.
func (s *SeatLayoutService) ValidateTemplate(t *models.SeatLayoutTemplate) error {
	if t.Rows <= 0 || t.Columns <= 0 {
		return &models.LayoutError{
			Kind:   models.LayoutShapeMismatch,
			Detail: fmt.Sprintf("rows and columns must be positive, got %dx%d", t.Rows, t.Columns),
		}
	}
	if len(t.Grid) != t.Rows {
		return &models.LayoutError{
			Kind:   models.LayoutShapeMismatch,
			Detail: fmt.Sprintf("grid has %d rows, expected %d", len(t.Grid), t.Rows),
		}
	}
	for r, row := range t.Grid {
		if len(row) != t.Columns {
			return &models.LayoutError{
				Kind:   models.LayoutShapeMismatch,
				Row:    r,
				Detail: fmt.Sprintf("row %d has %d cells, expected %d", r, len(row), t.Columns),
			}
		}
	}

	seatsByNumber := make(map[string]*models.Seat, len(t.Seats))
	for i := range t.Seats {
		seat := &t.Seats[i]
		if seat.SeatNumber == models.AisleMarker {
			return &models.LayoutError{
				Kind:   models.LayoutOrphanSeat,
				Row:    seat.Row,
				Column: seat.Column,
				Detail: "seat entry has an empty seat number",
			}
		}
		if _, dup := seatsByNumber[seat.SeatNumber]; dup {
			return &models.LayoutError{
				Kind:       models.LayoutDuplicateSeat,
				SeatNumber: seat.SeatNumber,
				Detail:     "seat number appears more than once in seats",
			}
		}
		seatsByNumber[seat.SeatNumber] = seat
	}

	seenInGrid := make(map[string]bool, len(t.Seats))
	for r, row := range t.Grid {
		for c, label := range row {
			if label == models.AisleMarker {
				continue
			}
			if seenInGrid[label] {
				return &models.LayoutError{
					Kind:       models.LayoutDuplicateSeat,
					SeatNumber: label,
					Row:        r,
					Column:     c,
					Detail:     "label appears in more than one grid cell",
				}
			}
			seenInGrid[label] = true

			seat, ok := seatsByNumber[label]
			if !ok {
				return &models.LayoutError{
					Kind:       models.LayoutUnlabeledSeat,
					SeatNumber: label,
					Row:        r,
					Column:     c,
				}
			}
			if seat.Row != r || seat.Column != c {
				return &models.LayoutError{
					Kind:       models.LayoutOrphanSeat,
					SeatNumber: label,
					Row:        r,
					Column:     c,
					Detail:     fmt.Sprintf("seat declares row %d column %d but its cell is row %d column %d", seat.Row, seat.Column, r, c),
				}
			}
		}
	}

	for number, seat := range seatsByNumber {
		if !seenInGrid[number] {
			return &models.LayoutError{
				Kind:       models.LayoutOrphanSeat,
				SeatNumber: number,
				Row:        seat.Row,
				Column:     seat.Column,
				Detail:     "no grid cell carries this seat number",
			}
		}
	}

	return nil
}

// CloneForSchedule deep-copies a template into a fresh schedule layout with
// every seat AVAILABLE. Called exactly once per schedule creation; there is
// deliberately no re-sync operation, a schedule's layout is an independent
// copy from that moment on.
func (s *SeatLayoutService) CloneForSchedule(t *models.SeatLayoutTemplate) (*models.ScheduleSeatLayout, error) {
	if err := s.ValidateTemplate(t); err != nil {
		return nil, err
	}

	grid := make([][]string, len(t.Grid))
	for i, row := range t.Grid {
		grid[i] = append([]string(nil), row...)
	}

	seats := make([]models.ScheduledSeat, len(t.Seats))
	for i, seat := range t.Seats {
		seats[i] = models.ScheduledSeat{
			Seat:   seat,
			Status: models.SeatStatusAvailable,
		}
	}

	return &models.ScheduleSeatLayout{
		InstanceID: uuid.New().String(),
		LayoutID:   t.LayoutID,
		Rows:       t.Rows,
		Columns:    t.Columns,
		Grid:       grid,
		Seats:      seats,
	}, nil
}

// RenderedCell is one display cell of a seat map row. Seat is nil for
// aisle cells.
type RenderedCell struct {
	Label string                `json:"label"`
	Seat  *models.ScheduledSeat `json:"seat,omitempty"`
}

// RenderRow projects one grid row for display. Pure read, never mutates
// the layout.
func (s *SeatLayoutService) RenderRow(layout *models.ScheduleSeatLayout, rowIndex int) ([]RenderedCell, error) {
	if rowIndex < 0 || rowIndex >= len(layout.Grid) {
		return nil, fmt.Errorf("row index %d out of range for %d rows", rowIndex, len(layout.Grid))
	}

	row := layout.Grid[rowIndex]
	cells := make([]RenderedCell, len(row))
	for c, label := range row {
		cells[c] = RenderedCell{Label: label}
		if label == models.AisleMarker {
			continue
		}
		if seat, ok := layout.SeatByNumber(label); ok {
			seatCopy := *seat
			cells[c].Seat = &seatCopy
		}
	}
	return cells, nil
}

// RenderLayout projects the whole grid row by row
func (s *SeatLayoutService) RenderLayout(layout *models.ScheduleSeatLayout) ([][]RenderedCell, error) {
	rendered := make([][]RenderedCell, len(layout.Grid))
	for r := range layout.Grid {
		cells, err := s.RenderRow(layout, r)
		if err != nil {
			return nil, err
		}
		rendered[r] = cells
	}
	return rendered, nil
}

// IsBookable reports whether a seat can be selected: AVAILABLE and not an
// aisle placeholder that slipped into the seats list
func (s *SeatLayoutService) IsBookable(seat *models.ScheduledSeat) bool {
	return seat != nil &&
		seat.SeatNumber != models.AisleMarker &&
		seat.Status == models.SeatStatusAvailable
}

// NormalizeLayoutInput converts any of the accepted input shapes into a
// validated SeatLayoutTemplate. Cells whose label is not claimed by a seat
// entry become aisle markers, which also absorbs the legacy "A" walkway
// convention. Seats that omit coordinates inherit them from their grid cell.
func (s *SeatLayoutService) NormalizeLayoutInput(in *models.SeatLayoutInput) (*models.SeatLayoutTemplate, error) {
	rows, err := in.GridRows()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(in.Seats))
	for _, seat := range in.Seats {
		known[seat.SeatNumber] = true
	}

	grid := make([][]string, len(rows))
	position := make(map[string][2]int, len(in.Seats))
	for r, row := range rows {
		grid[r] = make([]string, len(row))
		for c, label := range row {
			if !known[label] {
				grid[r][c] = models.AisleMarker
				continue
			}
			grid[r][c] = label
			position[label] = [2]int{r, c}
		}
	}

	seats := make([]models.Seat, 0, len(in.Seats))
	for _, si := range in.Seats {
		seat := models.Seat{
			SeatNumber:   si.SeatNumber,
			Category:     normalizeSeatCategory(si.Category, si.Type),
			BasePrice:    si.BasePrice,
			Currency:     si.Currency,
			IsAccessible: si.IsAccessible || si.IsHandicapped,
		}
		if seat.BasePrice == 0 {
			seat.BasePrice = si.Price
		}
		if seat.Currency == "" {
			seat.Currency = "PKR"
		}
		if si.Row != nil && si.Column != nil {
			seat.Row = *si.Row
			seat.Column = *si.Column
		} else if pos, ok := position[si.SeatNumber]; ok {
			seat.Row = pos[0]
			seat.Column = pos[1]
		}
		seats = append(seats, seat)
	}

	layoutID := in.LayoutID
	if layoutID == "" {
		layoutID = uuid.New().String()
	}

	template := &models.SeatLayoutTemplate{
		LayoutID: layoutID,
		Name:     in.Name,
		Rows:     in.Rows,
		Columns:  in.Columns,
		Grid:     grid,
		Seats:    seats,
	}
	if err := s.ValidateTemplate(template); err != nil {
		return nil, err
	}
	return template, nil
}

// normalizeSeatCategory maps the category field and its legacy aliases onto
// the closed enum. The category is informational only, so unknown values
// degrade to MIDDLE instead of failing the request.
func normalizeSeatCategory(category, legacyType string) models.SeatCategory {
	value := category
	if value == "" {
		value = legacyType
	}
	switch strings.ToUpper(value) {
	case "WINDOW":
		return models.SeatCategoryWindow
	case "AISLE":
		return models.SeatCategoryAisle
	case "BERTH", "UPPER_BERTH", "LOWER_BERTH", "SLEEPER":
		return models.SeatCategoryBerth
	default:
		return models.SeatCategoryMiddle
	}
}

// CreateTemplate normalizes, validates and stores a layout template
func (s *SeatLayoutService) CreateTemplate(in *models.SeatLayoutInput) (*models.SeatLayoutTemplate, error) {
	template, err := s.NormalizeLayoutInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(template); err != nil {
		return nil, fmt.Errorf("failed to save seat layout template: %w", err)
	}
	return template, nil
}

// GetTemplateByID retrieves a layout template
func (s *SeatLayoutService) GetTemplateByID(id string) (*models.SeatLayoutTemplate, error) {
	return s.repo.GetByID(id)
}

// ListTemplates retrieves all layout templates
func (s *SeatLayoutService) ListTemplates() ([]models.SeatLayoutTemplate, error) {
	return s.repo.List()
}

// UpdateTemplate replaces a stored template after re-validation. Existing
// schedules keep their cloned copies untouched.
func (s *SeatLayoutService) UpdateTemplate(id string, in *models.SeatLayoutInput) (*models.SeatLayoutTemplate, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	in.LayoutID = id
	template, err := s.NormalizeLayoutInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(template); err != nil {
		return nil, fmt.Errorf("failed to update seat layout template: %w", err)
	}
	return template, nil
}

// DeleteTemplate removes a layout template
func (s *SeatLayoutService) DeleteTemplate(id string) error {
	return s.repo.Delete(id)
}
