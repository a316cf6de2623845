package database

import "github.com/Hamid-2027/seatMeCombine/internal/models"

// PaymentAuditRepository handles the append-only payment audit trail
type PaymentAuditRepository struct {
	store DocumentStore
}

// NewPaymentAuditRepository creates a new payment audit repository
func NewPaymentAuditRepository(store DocumentStore) *PaymentAuditRepository {
	return &PaymentAuditRepository{store: store}
}

// Append stores a new audit entry
func (r *PaymentAuditRepository) Append(audit *models.PaymentAudit) error {
	_, err := r.store.Put(CollectionPaymentAudits, audit.ID, audit)
	return err
}

// ListByBooking retrieves all audit entries for a booking
func (r *PaymentAuditRepository) ListByBooking(bookingID string) ([]models.PaymentAudit, error) {
	var audits []models.PaymentAudit
	if err := r.store.QueryByField(CollectionPaymentAudits, "bookingId", bookingID, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}
