package models

import "time"

// ContactInfo holds a company's public contact details
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website,omitempty"`
}

// CompanyRatings aggregates review scores for a bus company
type CompanyRatings struct {
	Overall     float64 `json:"overall"`
	Comfort     float64 `json:"comfort"`
	Punctuality float64 `json:"punctuality"`
	Cleanliness float64 `json:"cleanliness"`
	ReviewCount int     `json:"reviewCount"`
}

// BusCompany represents an operator listed on the platform
type BusCompany struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Logo          string         `json:"logo,omitempty"`
	Description   string         `json:"description,omitempty"`
	FoundedYear   int            `json:"foundedYear,omitempty"`
	Headquarters  string         `json:"headquarters,omitempty"`
	ContactInfo   ContactInfo    `json:"contactInfo"`
	Services      []string       `json:"services,omitempty"`
	FleetSize     int            `json:"fleetSize,omitempty"`
	RoutesCovered []string       `json:"routesCovered,omitempty"`
	Ratings       CompanyRatings `json:"ratings"`
	BusTypes      []string       `json:"busTypes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CreateBusCompanyRequest represents the request to register a company
type CreateBusCompanyRequest struct {
	Name         string      `json:"name" binding:"required"`
	Logo         string      `json:"logo"`
	Description  string      `json:"description"`
	FoundedYear  int         `json:"foundedYear"`
	Headquarters string      `json:"headquarters"`
	ContactInfo  ContactInfo `json:"contactInfo"`
	Services     []string    `json:"services"`
	BusTypes     []string    `json:"busTypes"`
}
