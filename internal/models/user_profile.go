package models

import "time"

// SavedPassenger is a passenger profile saved for quick rebooking
type SavedPassenger struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// SavedPaymentMethod is a tokenized payment method on a user profile.
// Only non-sensitive display fields are stored.
type SavedPaymentMethod struct {
	ID             string `json:"id"`
	Type           string `json:"type"` // card, wallet
	LastFourDigits string `json:"lastFourDigits,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	CardHolderName string `json:"cardHolderName,omitempty"`
	IsDefault      bool   `json:"isDefault"`
}

// BookingSummary is the compact booking record mirrored into a profile's
// booking history.
type BookingSummary struct {
	ID     string        `json:"id"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Date   string        `json:"date"`
	Status BookingStatus `json:"status"`
	Amount float64       `json:"amount"`
}

// UserProfile represents a passenger account
type UserProfile struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	PhoneNumber         string               `json:"phoneNumber"`
	Gender              Gender               `json:"gender,omitempty"`
	DateOfBirth         string               `json:"dateOfBirth,omitempty"`
	City                string               `json:"city,omitempty"`
	Country             string               `json:"country,omitempty"`
	SavedPassengers     []SavedPassenger     `json:"savedPassengers,omitempty"`
	SavedPaymentMethods []SavedPaymentMethod `json:"savedPaymentMethods,omitempty"`
	BookingHistory      []BookingSummary     `json:"bookingHistory,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}
