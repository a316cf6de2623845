package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

type CompanyHandler struct {
	companies *database.CompanyRepository
}

func NewCompanyHandler(companies *database.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// GetAllCompanies retrieves all bus companies
// GET /api/v1/bus-companies
func (h *CompanyHandler) GetAllCompanies(c *gin.Context) {
	companies, err := h.companies.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetCompanyByID retrieves a specific company
// GET /api/v1/bus-companies/:id
func (h *CompanyHandler) GetCompanyByID(c *gin.Context) {
	company, err := h.companies.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateCompany registers a new bus company
// POST /api/v1/bus-companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req models.CreateBusCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	now := time.Now()
	company := &models.BusCompany{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Logo:         req.Logo,
		Description:  req.Description,
		FoundedYear:  req.FoundedYear,
		Headquarters: req.Headquarters,
		ContactInfo:  req.ContactInfo,
		Services:     req.Services,
		BusTypes:     req.BusTypes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.companies.Save(company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany updates an existing company
// PUT /api/v1/bus-companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	company, err := h.companies.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateBusCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	company.Name = req.Name
	company.Logo = req.Logo
	company.Description = req.Description
	company.FoundedYear = req.FoundedYear
	company.Headquarters = req.Headquarters
	company.ContactInfo = req.ContactInfo
	company.Services = req.Services
	company.BusTypes = req.BusTypes
	company.UpdatedAt = time.Now()

	if err := h.companies.Save(company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a company
// DELETE /api/v1/bus-companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companies.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
