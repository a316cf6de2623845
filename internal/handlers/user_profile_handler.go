package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

type UserProfileHandler struct {
	profiles *database.UserProfileRepository
}

func NewUserProfileHandler(profiles *database.UserProfileRepository) *UserProfileHandler {
	return &UserProfileHandler{profiles: profiles}
}

type upsertProfileRequest struct {
	Name        string        `json:"name" binding:"required"`
	Email       string        `json:"email" binding:"required,email"`
	PhoneNumber string        `json:"phoneNumber"`
	Gender      models.Gender `json:"gender"`
	DateOfBirth string        `json:"dateOfBirth"`
	City        string        `json:"city"`
	Country     string        `json:"country"`
}

// GetAllProfiles retrieves all user profiles
// GET /api/v1/user-profiles
func (h *UserProfileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.profiles.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetProfileByID retrieves a specific profile with its booking history
// GET /api/v1/user-profiles/:id
func (h *UserProfileHandler) GetProfileByID(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile registers a passenger account
// POST /api/v1/user-profiles
func (h *UserProfileHandler) CreateProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	now := time.Now()
	profile := &models.UserProfile{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		City:        req.City,
		Country:     req.Country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile updates account details. Saved passengers, payment methods
// and booking history are managed elsewhere and left untouched.
// PUT /api/v1/user-profiles/:id
func (h *UserProfileHandler) UpdateProfile(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile.Name = req.Name
	profile.Email = req.Email
	profile.PhoneNumber = req.PhoneNumber
	profile.Gender = req.Gender
	profile.DateOfBirth = req.DateOfBirth
	profile.City = req.City
	profile.Country = req.Country
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddSavedPassenger saves a passenger for quick rebooking
// POST /api/v1/user-profiles/:id/passengers
func (h *UserProfileHandler) AddSavedPassenger(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var passenger models.SavedPassenger
	if err := c.ShouldBindJSON(&passenger); err != nil {
		respondBadRequest(c, err)
		return
	}
	if passenger.ID == "" {
		passenger.ID = uuid.New().String()
	}

	profile.SavedPassengers = append(profile.SavedPassengers, passenger)
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// RemoveSavedPassenger deletes a saved passenger from a profile
// DELETE /api/v1/user-profiles/:id/passengers/:passengerId
func (h *UserProfileHandler) RemoveSavedPassenger(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	passengerID := c.Param("passengerId")
	kept := profile.SavedPassengers[:0]
	for _, passenger := range profile.SavedPassengers {
		if passenger.ID != passengerID {
			kept = append(kept, passenger)
		}
	}
	if len(kept) == len(profile.SavedPassengers) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved passenger not found", "code": "NOT_FOUND"})
		return
	}
	profile.SavedPassengers = kept
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddSavedPaymentMethod stores a tokenized payment method on a profile. A
// method marked as default demotes any existing default.
// POST /api/v1/user-profiles/:id/payment-methods
func (h *UserProfileHandler) AddSavedPaymentMethod(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var method models.SavedPaymentMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		respondBadRequest(c, err)
		return
	}
	if method.ID == "" {
		method.ID = uuid.New().String()
	}
	if method.IsDefault {
		for i := range profile.SavedPaymentMethods {
			profile.SavedPaymentMethods[i].IsDefault = false
		}
	}

	profile.SavedPaymentMethods = append(profile.SavedPaymentMethods, method)
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// RemoveSavedPaymentMethod deletes a stored payment method from a profile
// DELETE /api/v1/user-profiles/:id/payment-methods/:methodId
func (h *UserProfileHandler) RemoveSavedPaymentMethod(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	methodID := c.Param("methodId")
	kept := profile.SavedPaymentMethods[:0]
	for _, method := range profile.SavedPaymentMethods {
		if method.ID != methodID {
			kept = append(kept, method)
		}
	}
	if len(kept) == len(profile.SavedPaymentMethods) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found", "code": "NOT_FOUND"})
		return
	}
	profile.SavedPaymentMethods = kept
	profile.UpdatedAt = time.Now()

	if err := h.profiles.Save(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes a passenger account
// DELETE /api/v1/user-profiles/:id
func (h *UserProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
