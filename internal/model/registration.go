package model

import "time"

const (
	RegistrationStatusPending   = "PENDING"
	RegistrationStatusVerified  = "VERIFIED"
	RegistrationStatusContacted = "CONTACTED"
	RegistrationStatusCompleted = "COMPLETED"
)

// Registration represents one citizen self-submission from the public form
type Registration struct {
	ID string `json:"id"`

	// Personal data
	FirstName     string     `json:"firstName"`
	MiddleName    *string    `json:"middleName,omitempty"`
	Surname       string     `json:"surname"`
	Nationality   string     `json:"nationality"`
	Hometown      *string    `json:"hometown,omitempty"`
	LGAOfOrigin   *string    `json:"lgaOfOrigin,omitempty"`
	StateOfOrigin *string    `json:"stateOfOrigin,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	Religion      *string    `json:"religion,omitempty"`
	Gender        *string    `json:"gender,omitempty"`

	// Contact info
	Phone      string  `json:"phone"`
	IsWhatsApp bool    `json:"isWhatsApp"`
	Email      *string `json:"email,omitempty"`

	// Address
	HouseNumber    *string `json:"houseNumber,omitempty"`
	StreetName     *string `json:"streetName,omitempty"`
	City           *string `json:"city,omitempty"`
	ResidenceLGA   *string `json:"residenceLga,omitempty"`
	ResidenceState *string `json:"residenceState,omitempty"`

	// Identity
	PVCStatus *string `json:"pvcStatus,omitempty"`
	NINHash   string  `json:"-"` // Never expose the hash in JSON responses
	NINMasked string  `json:"ninMasked"`

	// Image
	ImageURL string `json:"imageUrl"`

	// Emergency contact
	EmergencyName  *string `json:"emergencyName,omitempty"`
	EmergencyRel   *string `json:"emergencyRel,omitempty"`
	EmergencyPhone *string `json:"emergencyPhone,omitempty"`

	// Meta
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest carries the public form fields. The same struct binds
// JSON bodies (camera capture sends base64 imageData) and multipart forms
// (file upload), so every field has both tags.
type RegisterRequest struct {
	FirstName     string `json:"firstName" form:"firstName" binding:"required"`
	MiddleName    string `json:"middleName" form:"middleName"`
	Surname       string `json:"surname" form:"surname" binding:"required"`
	Nationality   string `json:"nationality" form:"nationality"`
	Hometown      string `json:"hometown" form:"hometown"`
	LGAOfOrigin   string `json:"lgaOfOrigin" form:"lgaOfOrigin"`
	StateOfOrigin string `json:"stateOfOrigin" form:"stateOfOrigin"`
	DOB           string `json:"dob" form:"dob"`
	Religion      string `json:"religion" form:"religion"`
	Gender        string `json:"gender" form:"gender"`

	Phone      string `json:"phone" form:"phone" binding:"required"`
	IsWhatsApp string `json:"isWhatsApp" form:"isWhatsApp"`
	Email      string `json:"email" form:"email"`

	HouseNumber    string `json:"houseNumber" form:"houseNumber"`
	StreetName     string `json:"streetName" form:"streetName"`
	City           string `json:"city" form:"city"`
	ResidenceLGA   string `json:"residenceLga" form:"residenceLga"`
	ResidenceState string `json:"residenceState" form:"residenceState"`

	PVCStatus string `json:"pvcStatus" form:"pvcStatus"`
	NIN       string `json:"nin" form:"nin" binding:"required"`

	EmergencyName  string `json:"emergencyName" form:"emergencyName"`
	EmergencyRel   string `json:"emergencyRel" form:"emergencyRel"`
	EmergencyPhone string `json:"emergencyPhone" form:"emergencyPhone"`

	// Base64 data URI from camera capture, used when no file is attached
	ImageData string `json:"imageData" form:"imageData"`
}
