package model

import "time"

const (
	RoleAdmin             = "admin"
	RoleBoard             = "board"
	RoleOfficerRead       = "officer_read"
	RoleOfficerUpload     = "officer_upload"
	RoleOfficerEngagement = "officer_engagement"
)

// User represents an administrative account in the system
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditLog records one authorized administrative action
type AuditLog struct {
	ID        int64     `json:"id"`
	AdminID   int       `json:"admin_id"`
	Action    string    `json:"action"`
	Details   *string   `json:"details,omitempty"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}
