package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// CompanyRepository handles bus company persistence
type CompanyRepository struct {
	store DocumentStore
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(store DocumentStore) *CompanyRepository {
	return &CompanyRepository{store: store}
}

// GetByID retrieves a company by id
func (r *CompanyRepository) GetByID(id string) (*models.BusCompany, error) {
	var company models.BusCompany
	if _, err := r.store.GetByID(CollectionBusCompanies, id, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves all companies
func (r *CompanyRepository) List() ([]models.BusCompany, error) {
	var companies []models.BusCompany
	if err := r.store.List(CollectionBusCompanies, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Save upserts a company
func (r *CompanyRepository) Save(company *models.BusCompany) error {
	_, err := r.store.Put(CollectionBusCompanies, company.ID, company)
	return err
}

// Delete removes a company
func (r *CompanyRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionBusCompanies, id)
}
