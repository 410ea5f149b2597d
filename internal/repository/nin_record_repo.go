package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"citizen_registry/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use.
// pgxmock implements the same set in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NINRecordRepository defines operations for bulk-imported identity records
type NINRecordRepository interface {
	UpsertByHash(ctx context.Context, rec *model.NINRecord) error
	FindByHash(ctx context.Context, hash string) (*model.NINRecord, error)
	Find(ctx context.Context, filters model.CitizenFilters, page model.Pagination) ([]model.NINRecord, error)
	Count(ctx context.Context, filters model.CitizenFilters) (int64, error)
}

type ninRecordRepository struct {
	db DB
}

// NewNINRecordRepository creates a new NINRecordRepository
func NewNINRecordRepository(db DB) NINRecordRepository {
	return &ninRecordRepository{db: db}
}

// UpsertByHash inserts the record or overwrites every data field of the
// existing row with the same nin_hash. imported_at is deliberately left
// out of the update so it keeps the first-seen timestamp.
func (r *ninRecordRepository) UpsertByHash(ctx context.Context, rec *model.NINRecord) error {
	sql := `INSERT INTO nin_records
            (nin_hash, nin_masked, first_name, last_name, gender, date_of_birth, state, lga, ward, phone, pvc_status, email, address)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
            ON CONFLICT (nin_hash) DO UPDATE SET
                nin_masked = EXCLUDED.nin_masked,
                first_name = EXCLUDED.first_name,
                last_name = EXCLUDED.last_name,
                gender = EXCLUDED.gender,
                date_of_birth = EXCLUDED.date_of_birth,
                state = EXCLUDED.state,
                lga = EXCLUDED.lga,
                ward = EXCLUDED.ward,
                phone = EXCLUDED.phone,
                pvc_status = EXCLUDED.pvc_status,
                email = EXCLUDED.email,
                address = EXCLUDED.address
            RETURNING id, imported_at`
	err := r.db.QueryRow(ctx, sql,
		rec.NINHash, rec.NINMasked, rec.FirstName, rec.LastName, rec.Gender, rec.DateOfBirth,
		rec.State, rec.LGA, rec.Ward, rec.Phone, rec.PVCStatus, rec.Email, rec.Address,
	).Scan(&rec.ID, &rec.ImportedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert nin record: %w", err)
	}
	return nil
}

// FindByHash retrieves a record by its nin_hash
func (r *ninRecordRepository) FindByHash(ctx context.Context, hash string) (*model.NINRecord, error) {
	rec := &model.NINRecord{}
	sql := `SELECT id, nin_hash, nin_masked, first_name, last_name, gender, date_of_birth, state, lga, ward, phone, pvc_status, email, address, imported_at
            FROM nin_records WHERE nin_hash = $1`
	err := r.db.QueryRow(ctx, sql, hash).Scan(
		&rec.ID, &rec.NINHash, &rec.NINMasked, &rec.FirstName, &rec.LastName, &rec.Gender,
		&rec.DateOfBirth, &rec.State, &rec.LGA, &rec.Ward, &rec.Phone, &rec.PVCStatus,
		&rec.Email, &rec.Address, &rec.ImportedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract
		}
		return nil, fmt.Errorf("failed to find nin record by hash: %w", err)
	}
	return rec, nil
}

// Find retrieves a page of records, most recently imported first
func (r *ninRecordRepository) Find(ctx context.Context, filters model.CitizenFilters, page model.Pagination) ([]model.NINRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, nin_hash, nin_masked, first_name, last_name, gender, date_of_birth, state, lga, ward, phone, pvc_status, email, address, imported_at
                               FROM nin_records`)

	conditions, args := citizenConditions(filters)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY imported_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query nin records: %w", err)
	}
	defer rows.Close()

	var records []model.NINRecord
	for rows.Next() {
		var rec model.NINRecord
		if err := rows.Scan(
			&rec.ID, &rec.NINHash, &rec.NINMasked, &rec.FirstName, &rec.LastName, &rec.Gender,
			&rec.DateOfBirth, &rec.State, &rec.LGA, &rec.Ward, &rec.Phone, &rec.PVCStatus,
			&rec.Email, &rec.Address, &rec.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nin record row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nin record rows: %w", err)
	}
	return records, nil
}

// Count returns the total number of records matching the filters
func (r *ninRecordRepository) Count(ctx context.Context, filters model.CitizenFilters) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM nin_records`)

	conditions, args := citizenConditions(filters)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	var total int64
	if err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count nin records: %w", err)
	}
	return total, nil
}

func citizenConditions(filters model.CitizenFilters) ([]string, []interface{}) {
	var conditions []string
	args := []interface{}{}
	argCount := 1

	if filters.PVCStatus != nil && *filters.PVCStatus != "" {
		conditions = append(conditions, fmt.Sprintf("pvc_status = $%d", argCount))
		args = append(args, *filters.PVCStatus)
		argCount++
	}
	if filters.State != nil && *filters.State != "" {
		conditions = append(conditions, fmt.Sprintf("state = $%d", argCount))
		args = append(args, *filters.State)
	}
	return conditions, args
}
