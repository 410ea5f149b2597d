package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"citizen_registry/internal/metrics"
	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"
	"citizen_registry/internal/storage"
	"citizen_registry/internal/utils"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

var (
	ErrInvalidNINLength    = errors.New("NIN must be 11 digits")
	ErrAlreadyRegistered   = errors.New("this NIN has already been registered")
	ErrImageRequired       = errors.New("image is required")
	ErrInvalidImagePayload = errors.New("failed to decode image payload")
)

// RegisterService handles public citizen self-registration
type RegisterService interface {
	// RegisterCitizen validates and persists one submission. image carries
	// the bytes of an uploaded file when present; otherwise the base64
	// imageData field of the request is used. Returns the registration ID.
	RegisterCitizen(ctx context.Context, req model.RegisterRequest, image []byte, contentType string) (string, error)
}

type registerService struct {
	repo    repository.RegistrationRepository
	images  storage.ImageStore
	metrics *metrics.Metrics
}

// NewRegisterService creates a new RegisterService
func NewRegisterService(repo repository.RegistrationRepository, images storage.ImageStore, m *metrics.Metrics) RegisterService {
	return &registerService{repo: repo, images: images, metrics: m}
}

func (s *registerService) RegisterCitizen(ctx context.Context, req model.RegisterRequest, image []byte, contentType string) (string, error) {
	nin := strings.TrimSpace(req.NIN)
	if len(nin) != 11 {
		return "", ErrInvalidNINLength
	}

	if image == nil && req.ImageData != "" {
		var err error
		image, contentType, err = decodeImageData(req.ImageData)
		if err != nil {
			return "", err
		}
	}
	if len(image) == 0 {
		return "", ErrImageRequired
	}

	imageURL, err := s.images.SaveImage(ctx, image, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store citizen image: %w", err)
	}

	ninHash := utils.HashNIN(nin)

	// Fast-path duplicate check. Two concurrent submissions can both pass
	// it; the unique index behind repo.Create is the real guarantee.
	exists, err := s.repo.ExistsByHash(ctx, ninHash)
	if err != nil {
		return "", fmt.Errorf("failed to check existing registration: %w", err)
	}
	if exists {
		return "", ErrAlreadyRegistered
	}

	reg := &model.Registration{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		MiddleName:     optional(req.MiddleName),
		Surname:        req.Surname,
		Nationality:    req.Nationality,
		Hometown:       optional(req.Hometown),
		LGAOfOrigin:    optional(req.LGAOfOrigin),
		StateOfOrigin:  optional(req.StateOfOrigin),
		Religion:       optional(req.Religion),
		Gender:         optional(req.Gender),
		Phone:          req.Phone,
		IsWhatsApp:     req.IsWhatsApp == "true",
		Email:          optional(req.Email),
		HouseNumber:    optional(req.HouseNumber),
		StreetName:     optional(req.StreetName),
		City:           optional(req.City),
		ResidenceLGA:   optional(req.ResidenceLGA),
		ResidenceState: optional(req.ResidenceState),
		NINHash:        ninHash,
		NINMasked:      utils.MaskNIN(nin),
		ImageURL:       imageURL,
		EmergencyName:  optional(req.EmergencyName),
		EmergencyRel:   optional(req.EmergencyRel),
		EmergencyPhone: optional(req.EmergencyPhone),
		Status:         model.RegistrationStatusPending,
	}
	if reg.Nationality == "" {
		reg.Nationality = "Nigerian"
	}
	if req.PVCStatus != "" {
		pvc := strings.ToUpper(req.PVCStatus)
		reg.PVCStatus = &pvc
	}
	if req.DOB != "" {
		if t, err := dateparse.ParseAny(req.DOB); err == nil {
			reg.DOB = &t
		}
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			// The check-then-insert race lost; same answer as the pre-check
			return "", ErrAlreadyRegistered
		}
		return "", fmt.Errorf("failed to create registration: %w", err)
	}

	s.metrics.IncRegistrationsCreated()
	return reg.ID, nil
}

// decodeImageData decodes a base64 payload, optionally wrapped in a data
// URI (camera captures send data:image/...;base64,...).
func decodeImageData(data string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := data

	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return nil, "", ErrInvalidImagePayload
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if ct := strings.SplitN(meta, ";", 2)[0]; ct != "" {
			contentType = ct
		}
		payload = parts[1]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImagePayload
	}
	return raw, contentType, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
