package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

func newProfileRouter(t *testing.T) (*gin.Engine, *database.UserProfileRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryDocumentStore()
	profiles := database.NewUserProfileRepository(store)
	handler := NewUserProfileHandler(profiles)

	router := gin.New()
	router.GET("/user-profiles/:id", handler.GetProfileByID)
	router.POST("/user-profiles", handler.CreateProfile)
	router.POST("/user-profiles/:id/passengers", handler.AddSavedPassenger)
	router.DELETE("/user-profiles/:id/passengers/:passengerId", handler.RemoveSavedPassenger)
	router.POST("/user-profiles/:id/payment-methods", handler.AddSavedPaymentMethod)
	router.DELETE("/user-profiles/:id/payment-methods/:methodId", handler.RemoveSavedPaymentMethod)
	return router, profiles
}

func seedProfile(t *testing.T, profiles *database.UserProfileRepository) *models.UserProfile {
	t.Helper()
	now := time.Now()
	profile := &models.UserProfile{
		ID:        "user1",
		Name:      "Hamza Khan",
		Email:     "hamza@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, profiles.Save(profile))
	return profile
}

func TestSavedPaymentMethodEndpoints(t *testing.T) {
	router, profiles := newProfileRouter(t)
	seedProfile(t, profiles)

	t.Run("Add Assigns ID", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/user-profiles/user1/payment-methods", models.SavedPaymentMethod{
			Type:           "card",
			LastFourDigits: "4242",
			CardHolderName: "Hamza Khan",
			IsDefault:      true,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var profile models.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		require.Len(t, profile.SavedPaymentMethods, 1)
		assert.NotEmpty(t, profile.SavedPaymentMethods[0].ID)
		assert.True(t, profile.SavedPaymentMethods[0].IsDefault)
	})

	t.Run("New Default Demotes Previous", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/user-profiles/user1/payment-methods", models.SavedPaymentMethod{
			ID:        "pm2",
			Type:      "wallet",
			IsDefault: true,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var profile models.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		require.Len(t, profile.SavedPaymentMethods, 2)
		assert.False(t, profile.SavedPaymentMethods[0].IsDefault)
		assert.True(t, profile.SavedPaymentMethods[1].IsDefault)
	})

	t.Run("Remove", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/user-profiles/user1/payment-methods/pm2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var profile models.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		require.Len(t, profile.SavedPaymentMethods, 1)
		assert.NotEqual(t, "pm2", profile.SavedPaymentMethods[0].ID)
	})

	t.Run("Remove Unknown Method Is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/user-profiles/user1/payment-methods/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing Profile Is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/user-profiles/ghost/payment-methods", models.SavedPaymentMethod{Type: "card"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSavedPassengerEndpoints(t *testing.T) {
	router, profiles := newProfileRouter(t)
	seedProfile(t, profiles)

	w := doJSON(t, router, http.MethodPost, "/user-profiles/user1/passengers", models.SavedPassenger{
		ID:     "pax1",
		Name:   "Fatima Khan",
		Gender: models.GenderFemale,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Remove", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/user-profiles/user1/passengers/pax1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var profile models.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Empty(t, profile.SavedPassengers)
	})

	t.Run("Remove Unknown Passenger Is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/user-profiles/user1/passengers/pax1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
