package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"citizen_registry/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateRegistration is returned when the unique index on nin_hash
// rejects an insert. Two concurrent submissions can both pass the
// application-level existence check, so this is the guarantee that holds.
var ErrDuplicateRegistration = errors.New("registration with this NIN already exists")

// RegistrationRepository defines operations for public registrations
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	ExistsByHash(ctx context.Context, hash string) (bool, error)
	FindAll(ctx context.Context, page model.Pagination) ([]model.Registration, error)
	Count(ctx context.Context) (int64, error)
	CountByPVC(ctx context.Context, status string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type registrationRepository struct {
	db DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts a new registration. A unique violation on nin_hash is
// translated into ErrDuplicateRegistration.
func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	sql := `INSERT INTO registrations
            (id, first_name, middle_name, surname, nationality, hometown, lga_of_origin, state_of_origin,
             dob, religion, gender, phone, is_whatsapp, email,
             house_number, street_name, city, residence_lga, residence_state,
             pvc_status, nin_hash, nin_masked, image_url,
             emergency_name, emergency_rel, emergency_phone, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
                    $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
            RETURNING created_at`
	err := r.db.QueryRow(ctx, sql,
		reg.ID, reg.FirstName, reg.MiddleName, reg.Surname, reg.Nationality, reg.Hometown,
		reg.LGAOfOrigin, reg.StateOfOrigin, reg.DOB, reg.Religion, reg.Gender,
		reg.Phone, reg.IsWhatsApp, reg.Email,
		reg.HouseNumber, reg.StreetName, reg.City, reg.ResidenceLGA, reg.ResidenceState,
		reg.PVCStatus, reg.NINHash, reg.NINMasked, reg.ImageURL,
		reg.EmergencyName, reg.EmergencyRel, reg.EmergencyPhone, reg.Status,
	).Scan(&reg.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// ExistsByHash reports whether a registration with this nin_hash exists
func (r *registrationRepository) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS(SELECT 1 FROM registrations WHERE nin_hash = $1)`
	if err := r.db.QueryRow(ctx, sql, hash).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check registration existence: %w", err)
	}
	return exists, nil
}

// FindAll retrieves a page of registrations, most recent first
func (r *registrationRepository) FindAll(ctx context.Context, page model.Pagination) ([]model.Registration, error) {
	sql := `SELECT id, first_name, middle_name, surname, nationality, hometown, lga_of_origin, state_of_origin,
                   dob, religion, gender, phone, is_whatsapp, email,
                   house_number, street_name, city, residence_lga, residence_state,
                   pvc_status, nin_masked, image_url,
                   emergency_name, emergency_rel, emergency_phone, status, created_at
            FROM registrations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, sql, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(
			&reg.ID, &reg.FirstName, &reg.MiddleName, &reg.Surname, &reg.Nationality, &reg.Hometown,
			&reg.LGAOfOrigin, &reg.StateOfOrigin, &reg.DOB, &reg.Religion, &reg.Gender,
			&reg.Phone, &reg.IsWhatsApp, &reg.Email,
			&reg.HouseNumber, &reg.StreetName, &reg.City, &reg.ResidenceLGA, &reg.ResidenceState,
			&reg.PVCStatus, &reg.NINMasked, &reg.ImageURL,
			&reg.EmergencyName, &reg.EmergencyRel, &reg.EmergencyPhone, &reg.Status, &reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return regs, nil
}

// Count returns the total number of registrations
func (r *registrationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return total, nil
}

// CountByPVC returns the number of registrations with the given pvc_status
func (r *registrationRepository) CountByPVC(ctx context.Context, status string) (int64, error) {
	var total int64
	sql := `SELECT COUNT(*) FROM registrations WHERE pvc_status = $1`
	if err := r.db.QueryRow(ctx, sql, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count registrations by pvc status: %w", err)
	}
	return total, nil
}

// CountCreatedSince returns the number of registrations created at or after
// the given instant
func (r *registrationRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	sql := `SELECT COUNT(*) FROM registrations WHERE created_at >= $1`
	if err := r.db.QueryRow(ctx, sql, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count recent registrations: %w", err)
	}
	return total, nil
}
