package models

import "time"

// Route represents a city-pair served by one or more companies
type Route struct {
	ID                string    `json:"id"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	Distance          string    `json:"distance,omitempty"`
	EstimatedDuration string    `json:"estimatedDuration,omitempty"`
	AvailableBusTypes []string  `json:"availableBusTypes,omitempty"`
	IsPopular         bool      `json:"isPopular"`
	CompanyIDs        []string  `json:"companyIds,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateRouteRequest represents the request to add a route
type CreateRouteRequest struct {
	From              string   `json:"from" binding:"required"`
	To                string   `json:"to" binding:"required"`
	Distance          string   `json:"distance"`
	EstimatedDuration string   `json:"estimatedDuration"`
	AvailableBusTypes []string `json:"availableBusTypes"`
	IsPopular         bool     `json:"isPopular"`
	CompanyIDs        []string `json:"companyIds"`
}
