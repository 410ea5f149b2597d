package model

import "time"

const (
	PVCStatusYes = "YES"
	PVCStatusNo  = "NO"
)

// NINRecord represents one bulk-imported citizen identity record.
// The raw NIN is never stored: nin_hash is the unique lookup key and
// nin_masked is the only display form.
type NINRecord struct {
	ID          int64      `json:"id"`
	NINHash     string     `json:"-"` // Never expose the hash in JSON responses
	NINMasked   string     `json:"ninMasked"`
	FirstName   *string    `json:"firstName,omitempty"`
	LastName    *string    `json:"lastName,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"` // Pointer for optional field
	State       *string    `json:"state,omitempty"`
	LGA         *string    `json:"lga,omitempty"`
	Ward        *string    `json:"ward,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	PVCStatus   string     `json:"pvcStatus"`
	Email       *string    `json:"email,omitempty"`
	Address     *string    `json:"address,omitempty"`
	ImportedAt  time.Time  `json:"importedAt"`
}

// CitizenFilters contains filter parameters for the citizens listing
type CitizenFilters struct {
	PVCStatus *string
	State     *string
}

// Pagination is the shared 1-based page/limit contract for listings
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page/limit to the defaults used across listings.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 50
	}
}

// Offset returns the SQL offset for the normalized page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ImportResult summarizes one bulk upload run
type ImportResult struct {
	Count  int `json:"count"`  // rows upserted
	Errors int `json:"errors"` // rows that failed persistence (skipped rows excluded)
}

// DashboardStats represents the point-in-time counters for admin/board views
type DashboardStats struct {
	TotalNINs          int64 `json:"totalNINs"`
	TotalRegistrations int64 `json:"totalRegistrations"`
	TotalPVC           int64 `json:"totalPVC"`
	TotalNonPVC        int64 `json:"totalNonPVC"`
	NewToday           int64 `json:"newToday"` // sliding 24h window, computed at call time
}
