package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

func newBookingRouter(t *testing.T) (*gin.Engine, *database.MemoryDocumentStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := database.NewMemoryDocumentStore()
	layouts := services.NewSeatLayoutService(database.NewSeatLayoutRepository(store))
	schedules := database.NewScheduleRepository(store)
	bookingService := services.NewBookingService(
		database.NewBookingRepository(store),
		schedules,
		database.NewUserProfileRepository(store),
		database.NewRouteRepository(store),
		logger,
	)
	invoiceService := services.NewInvoiceService(
		database.NewBookingRepository(store),
		schedules,
		database.NewRouteRepository(store),
	)

	layout, err := layouts.CloneForSchedule(&models.SeatLayoutTemplate{
		LayoutID: "layout1",
		Name:     "Mini Coach",
		Rows:     1,
		Columns:  2,
		Grid:     [][]string{{"1A", "1B"}},
		Seats: []models.Seat{
			{SeatNumber: "1A", Row: 0, Column: 0, Category: models.SeatCategoryWindow, BasePrice: 1000, Currency: "PKR"},
			{SeatNumber: "1B", Row: 0, Column: 1, Category: models.SeatCategoryAisle, BasePrice: 1000, Currency: "PKR"},
		},
	})
	require.NoError(t, err)

	now := time.Now()
	schedule := &models.BusSchedule{
		ID:            "sched1",
		RouteID:       "route1",
		BusID:         "bus1",
		DepartureTime: now.Add(24 * time.Hour),
		ArrivalTime:   now.Add(28 * time.Hour),
		Date:          now.Format("2006-01-02"),
		Currency:      "PKR",
		SeatLayout:    *layout,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	schedule.RefreshSeatCounts()
	require.NoError(t, schedules.Save(schedule))

	handler := NewBookingHandler(bookingService, invoiceService)
	router := gin.New()
	router.POST("/bookings", handler.CreateBooking)
	router.GET("/bookings/:id", handler.GetBookingByID)
	router.POST("/bookings/:id/cancel", handler.CancelBooking)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingEndpoint(t *testing.T) {
	router, _ := newBookingRouter(t)

	body := models.CreateBookingRequest{
		ScheduleID: "sched1",
		Seats: []models.SeatSelection{
			{SeatNumber: "1A", PassengerName: "Ayesha", Gender: models.GenderFemale},
		},
	}

	t.Run("Created", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/bookings", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var booking models.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, []string{"1A"}, booking.SeatNumbers)
	})

	t.Run("Seat Conflict Is 409", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/bookings", body)
		require.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "SEAT_UNAVAILABLE", resp["code"])
		assert.Equal(t, []interface{}{"1A"}, resp["seats"])
	})

	t.Run("Unknown Seat Is 400", func(t *testing.T) {
		bad := body
		bad.Seats = []models.SeatSelection{{SeatNumber: "9Z", PassengerName: "Ghost", Gender: models.GenderMale}}

		w := doJSON(t, router, http.MethodPost, "/bookings", bad)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "UNKNOWN_SEAT", resp["code"])
	})

	t.Run("Duplicate Seat Numbers Are 400", func(t *testing.T) {
		bad := body
		bad.Seats = []models.SeatSelection{
			{SeatNumber: "1B", PassengerName: "Ayesha", Gender: models.GenderFemale},
			{SeatNumber: "1B", PassengerName: "Bilal", Gender: models.GenderMale},
		}

		w := doJSON(t, router, http.MethodPost, "/bookings", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Occupant Gender Must Be Binary", func(t *testing.T) {
		bad := body
		bad.Seats = []models.SeatSelection{{SeatNumber: "1B", PassengerName: "Sami", Gender: models.GenderOther}}

		w := doJSON(t, router, http.MethodPost, "/bookings", bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed Body Is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	router, _ := newBookingRouter(t)

	w := doJSON(t, router, http.MethodPost, "/bookings", models.CreateBookingRequest{
		ScheduleID: "sched1",
		Seats: []models.SeatSelection{
			{SeatNumber: "1B", PassengerName: "Bilal", Gender: models.GenderMale},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	w = doJSON(t, router, http.MethodPost, "/bookings/"+booking.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	t.Run("Missing Booking Is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/bookings/nope/cancel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
