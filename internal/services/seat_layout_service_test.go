package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

func newLayoutService() *SeatLayoutService {
	store := database.NewMemoryDocumentStore()
	return NewSeatLayoutService(database.NewSeatLayoutRepository(store))
}

// coachTemplate builds a 10x4 coach where row 0 is 1A 1B [aisle] 1C and the
// remaining rows are walkway
func coachTemplate() *models.SeatLayoutTemplate {
	grid := make([][]string, 10)
	for i := range grid {
		grid[i] = []string{"", "", "", ""}
	}
	grid[0] = []string{"1A", "1B", "", "1C"}

	return &models.SeatLayoutTemplate{
		LayoutID: "layout1",
		Name:     "Test Coach",
		Rows:     10,
		Columns:  4,
		Grid:     grid,
		Seats: []models.Seat{
			{SeatNumber: "1A", Row: 0, Column: 0, Category: models.SeatCategoryWindow, BasePrice: 1500, Currency: "PKR"},
			{SeatNumber: "1B", Row: 0, Column: 1, Category: models.SeatCategoryAisle, BasePrice: 1400, Currency: "PKR"},
			{SeatNumber: "1C", Row: 0, Column: 3, Category: models.SeatCategoryWindow, BasePrice: 1500, Currency: "PKR"},
		},
	}
}

func layoutErrorKind(t *testing.T, err error) models.LayoutErrorKind {
	t.Helper()
	var layoutErr *models.LayoutError
	require.ErrorAs(t, err, &layoutErr)
	return layoutErr.Kind
}

func TestValidateTemplate(t *testing.T) {
	svc := newLayoutService()

	t.Run("Valid Template", func(t *testing.T) {
		assert.NoError(t, svc.ValidateTemplate(coachTemplate()))
	})

	t.Run("Orphan Seat", func(t *testing.T) {
		template := coachTemplate()
		template.Seats = append(template.Seats, models.Seat{SeatNumber: "1D", Row: 0, Column: 2})

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutOrphanSeat, layoutErrorKind(t, err))
	})

	t.Run("Short Row Rejected", func(t *testing.T) {
		template := coachTemplate()
		template.Grid[3] = []string{"", ""}

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutShapeMismatch, layoutErrorKind(t, err))
	})

	t.Run("Row Count Mismatch", func(t *testing.T) {
		template := coachTemplate()
		template.Grid = template.Grid[:9]

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutShapeMismatch, layoutErrorKind(t, err))
	})

	t.Run("Duplicate Seat Entry", func(t *testing.T) {
		template := coachTemplate()
		template.Seats = append(template.Seats, template.Seats[0])

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutDuplicateSeat, layoutErrorKind(t, err))
	})

	t.Run("Duplicate Grid Label", func(t *testing.T) {
		template := coachTemplate()
		template.Grid[1][0] = "1A"

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutDuplicateSeat, layoutErrorKind(t, err))
	})

	t.Run("Unlabeled Seat Cell", func(t *testing.T) {
		template := coachTemplate()
		template.Grid[2][0] = "3A"

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutUnlabeledSeat, layoutErrorKind(t, err))
	})

	t.Run("Position Mismatch", func(t *testing.T) {
		template := coachTemplate()
		template.Seats[0].Column = 2

		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutOrphanSeat, layoutErrorKind(t, err))
	})

	t.Run("Seat Numbers Are Case Sensitive", func(t *testing.T) {
		template := coachTemplate()
		template.Grid[0][0] = "1a"

		// "1a" has no seats entry; "1A" loses its cell
		err := svc.ValidateTemplate(template)
		require.Error(t, err)
		assert.Equal(t, models.LayoutUnlabeledSeat, layoutErrorKind(t, err))
	})
}

func TestCloneForSchedule(t *testing.T) {
	svc := newLayoutService()
	template := coachTemplate()

	t.Run("Clone Purity", func(t *testing.T) {
		first, err := svc.CloneForSchedule(template)
		require.NoError(t, err)
		second, err := svc.CloneForSchedule(template)
		require.NoError(t, err)

		assert.NotEqual(t, first.InstanceID, second.InstanceID)
		assert.Equal(t, first.Grid, second.Grid)
		assert.Equal(t, first.Seats, second.Seats)

		for _, seat := range first.Seats {
			assert.Equal(t, models.SeatStatusAvailable, seat.Status)
			assert.Nil(t, seat.OccupantGender)
			assert.Nil(t, seat.BookingRef)
		}
	})

	t.Run("Deep Copy", func(t *testing.T) {
		clone, err := svc.CloneForSchedule(template)
		require.NoError(t, err)

		clone.Grid[0][0] = "XX"
		clone.Seats[0].Status = models.SeatStatusBooked

		assert.Equal(t, "1A", template.Grid[0][0])
		require.NoError(t, svc.ValidateTemplate(template))
	})

	t.Run("Invalid Template Rejected", func(t *testing.T) {
		broken := coachTemplate()
		broken.Grid[0][2] = "ghost"

		_, err := svc.CloneForSchedule(broken)
		assert.Error(t, err)
	})
}

func TestRenderRow(t *testing.T) {
	svc := newLayoutService()
	layout, err := svc.CloneForSchedule(coachTemplate())
	require.NoError(t, err)

	t.Run("Aisle Cells Render Without Seat", func(t *testing.T) {
		cells, err := svc.RenderRow(layout, 0)
		require.NoError(t, err)
		require.Len(t, cells, 4)

		assert.Equal(t, "1A", cells[0].Label)
		require.NotNil(t, cells[0].Seat)
		assert.Equal(t, models.SeatStatusAvailable, cells[0].Seat.Status)

		assert.Equal(t, models.AisleMarker, cells[2].Label)
		assert.Nil(t, cells[2].Seat)
	})

	t.Run("Render Does Not Mutate", func(t *testing.T) {
		cells, err := svc.RenderRow(layout, 0)
		require.NoError(t, err)

		cells[0].Seat.Status = models.SeatStatusBlocked
		seat, ok := layout.SeatByNumber("1A")
		require.True(t, ok)
		assert.Equal(t, models.SeatStatusAvailable, seat.Status)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		_, err := svc.RenderRow(layout, 10)
		assert.Error(t, err)
		_, err = svc.RenderRow(layout, -1)
		assert.Error(t, err)
	})
}

func TestIsBookable(t *testing.T) {
	svc := newLayoutService()

	assert.True(t, svc.IsBookable(&models.ScheduledSeat{
		Seat:   models.Seat{SeatNumber: "1A"},
		Status: models.SeatStatusAvailable,
	}))
	assert.False(t, svc.IsBookable(&models.ScheduledSeat{
		Seat:   models.Seat{SeatNumber: "1A"},
		Status: models.SeatStatusBooked,
	}))
	assert.False(t, svc.IsBookable(&models.ScheduledSeat{
		Seat:   models.Seat{SeatNumber: models.AisleMarker},
		Status: models.SeatStatusAvailable,
	}))
	assert.False(t, svc.IsBookable(nil))
}

func TestNormalizeLayoutInput(t *testing.T) {
	svc := newLayoutService()

	t.Run("Row Keyed Legacy Grid", func(t *testing.T) {
		in := &models.SeatLayoutInput{
			Name:    "Legacy Coach",
			Rows:    2,
			Columns: 3,
			Layout:  json.RawMessage(`{"row1":["2A","A","2B"],"row0":["1A","A","1B"]}`),
			Seats: []models.SeatInput{
				{SeatNumber: "1A", Type: "window", Price: 1200, IsHandicapped: true},
				{SeatNumber: "1B", Type: "UPPER_BERTH", Price: 1000},
				{SeatNumber: "2A", Type: "window", Price: 1200},
				{SeatNumber: "2B", Type: "window", Price: 1200},
			},
		}

		template, err := svc.NormalizeLayoutInput(in)
		require.NoError(t, err)

		// Row keys sort numerically and "A" walkway markers become aisles
		assert.Equal(t, [][]string{
			{"1A", "", "1B"},
			{"2A", "", "2B"},
		}, template.Grid)

		seat, ok := template.SeatByNumber("1A")
		require.True(t, ok)
		assert.Equal(t, 0, seat.Row)
		assert.Equal(t, 0, seat.Column)
		assert.Equal(t, models.SeatCategoryWindow, seat.Category)
		assert.Equal(t, 1200.0, seat.BasePrice)
		assert.Equal(t, "PKR", seat.Currency)
		assert.True(t, seat.IsAccessible)

		berth, ok := template.SeatByNumber("1B")
		require.True(t, ok)
		assert.Equal(t, models.SeatCategoryBerth, berth.Category)

		assert.NoError(t, svc.ValidateTemplate(template))
	})

	t.Run("Canonical Grid Passthrough", func(t *testing.T) {
		in := &models.SeatLayoutInput{
			LayoutID: "layout9",
			Name:     "Canonical",
			Rows:     1,
			Columns:  2,
			Grid:     [][]string{{"1A", "1B"}},
			Seats: []models.SeatInput{
				{SeatNumber: "1A", Row: intPtr(0), Column: intPtr(0), Category: "WINDOW", BasePrice: 900, Currency: "USD"},
				{SeatNumber: "1B", Row: intPtr(0), Column: intPtr(1), Category: "AISLE", BasePrice: 900, Currency: "USD"},
			},
		}

		template, err := svc.NormalizeLayoutInput(in)
		require.NoError(t, err)
		assert.Equal(t, "layout9", template.LayoutID)
		assert.Equal(t, "USD", template.Seats[0].Currency)
	})

	t.Run("Missing Grid", func(t *testing.T) {
		in := &models.SeatLayoutInput{Name: "No Grid", Rows: 1, Columns: 1, Seats: []models.SeatInput{{SeatNumber: "1A"}}}
		_, err := svc.NormalizeLayoutInput(in)
		assert.Error(t, err)
	})
}

func TestSeatLayoutTemplateCRUD(t *testing.T) {
	svc := newLayoutService()

	in := &models.SeatLayoutInput{
		Name:    "Stored",
		Rows:    1,
		Columns: 2,
		Grid:    [][]string{{"1A", "1B"}},
		Seats: []models.SeatInput{
			{SeatNumber: "1A", Category: "WINDOW", BasePrice: 800},
			{SeatNumber: "1B", Category: "AISLE", BasePrice: 800},
		},
	}

	created, err := svc.CreateTemplate(in)
	require.NoError(t, err)
	require.NotEmpty(t, created.LayoutID)

	got, err := svc.GetTemplateByID(created.LayoutID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	all, err := svc.ListTemplates()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteTemplate(created.LayoutID))
	_, err = svc.GetTemplateByID(created.LayoutID)
	assert.ErrorIs(t, err, database.ErrDocumentNotFound)
}

func intPtr(v int) *int { return &v }
