package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// RouteRepository handles bus route persistence
type RouteRepository struct {
	store DocumentStore
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(store DocumentStore) *RouteRepository {
	return &RouteRepository{store: store}
}

// GetByID retrieves a route by id
func (r *RouteRepository) GetByID(id string) (*models.Route, error) {
	var route models.Route
	if _, err := r.store.GetByID(CollectionBusRoutes, id, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// List retrieves all routes
func (r *RouteRepository) List() ([]models.Route, error) {
	var routes []models.Route
	if err := r.store.List(CollectionBusRoutes, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// ListPopular retrieves routes flagged as popular
func (r *RouteRepository) ListPopular() ([]models.Route, error) {
	var routes []models.Route
	if err := r.store.QueryByField(CollectionBusRoutes, "isPopular", true, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// Save upserts a route
func (r *RouteRepository) Save(route *models.Route) error {
	_, err := r.store.Put(CollectionBusRoutes, route.ID, route)
	return err
}

// Delete removes a route
func (r *RouteRepository) Delete(id string) error {
	return r.store.DeleteByID(CollectionBusRoutes, id)
}
