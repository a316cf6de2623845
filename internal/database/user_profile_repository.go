package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// UserProfileRepository handles passenger profile persistence
type UserProfileRepository struct {
	store DocumentStore
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(store DocumentStore) *UserProfileRepository {
	return &UserProfileRepository{store: store}
}

// GetByID retrieves a profile by user id
func (r *UserProfileRepository) GetByID(id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if _, err := r.store.GetByID(CollectionUserProfiles, id, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// List retrieves all profiles
func (r *UserProfileRepository) List() ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := r.store.List(CollectionUserProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save upserts a profile
func (r *UserProfileRepository) Save(profile *models.UserProfile) error {
	_, err := r.store.Put(CollectionUserProfiles, profile.ID, profile)
	return err
}

// Delete removes a profile
func (r *UserProfileRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionUserProfiles, id)
}
