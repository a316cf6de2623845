package models

import (
	"errors"
	"time"
)

// BusType represents the service class of a bus
type BusType string

const (
	BusTypeStandard BusType = "Standard"
	BusTypeBusiness BusType = "Business"
	BusTypePremium  BusType = "Premium"
	BusTypeSleeper  BusType = "Sleeper"
)

// Bus represents a vehicle operated by a bus company. A bus exclusively owns
// its seat layout template; deleting the bus deletes the template with it.
type Bus struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	BusType            BusType            `json:"busType"`
	RegistrationNumber string             `json:"registrationNumber"`
	Operator           string             `json:"operator"`
	CompanyID          string             `json:"companyId"`
	Amenities          []string           `json:"amenities"`
	SeatLayout         SeatLayoutTemplate `json:"seatLayout"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// CreateBusRequest represents the request to register a new bus
type CreateBusRequest struct {
	Name               string          `json:"name" binding:"required"`
	BusType            string          `json:"busType" binding:"required"`
	RegistrationNumber string          `json:"registrationNumber" binding:"required"`
	Operator           string          `json:"operator"`
	CompanyID          string          `json:"companyId" binding:"required"`
	Amenities          []string        `json:"amenities"`
	SeatLayout         SeatLayoutInput `json:"seatLayout" binding:"required"`
}

// UpdateBusRequest represents a partial bus update. The seat layout template
// may be replaced; schedules already cloned from it are unaffected.
type UpdateBusRequest struct {
	Name               *string          `json:"name,omitempty"`
	BusType            *string          `json:"busType,omitempty"`
	RegistrationNumber *string          `json:"registrationNumber,omitempty"`
	Operator           *string          `json:"operator,omitempty"`
	Amenities          []string         `json:"amenities,omitempty"`
	SeatLayout         *SeatLayoutInput `json:"seatLayout,omitempty"`
}

// Validate validates the CreateBusRequest
func (req *CreateBusRequest) Validate() error {
	busType := BusType(req.BusType)
	if busType != BusTypeStandard && busType != BusTypeBusiness &&
		busType != BusTypePremium && busType != BusTypeSleeper {
		return errors.New("invalid busType: must be Standard, Business, Premium, or Sleeper")
	}
	return nil
}
