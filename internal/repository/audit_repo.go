package repository

import (
	"context"
	"fmt"

	"citizen_registry/internal/model"
)

// AuditLogRepository records administrative actions
type AuditLogRepository interface {
	Insert(ctx context.Context, entry *model.AuditLog) error
}

type auditLogRepository struct {
	db DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Insert appends one audit entry
func (r *auditLogRepository) Insert(ctx context.Context, entry *model.AuditLog) error {
	sql := `INSERT INTO audit_logs (admin_id, action, details, ip_address)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, entry.AdminID, entry.Action, entry.Details, entry.IPAddress).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}
