package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = 30 * time.Second
)

// RegistryService serves the admin/board read paths: paginated listings of
// imported records and public registrations, and aggregate counts.
type RegistryService interface {
	ListCitizens(ctx context.Context, filters model.CitizenFilters, page model.Pagination) ([]model.NINRecord, int64, error)
	ListRegistrations(ctx context.Context, page model.Pagination) ([]model.Registration, int64, error)
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type registryService struct {
	ninRepo repository.NINRecordRepository
	regRepo repository.RegistrationRepository
	cache   *redis.Client // nil disables the stats cache
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(ninRepo repository.NINRecordRepository, regRepo repository.RegistrationRepository, cache *redis.Client) RegistryService {
	return &registryService{ninRepo: ninRepo, regRepo: regRepo, cache: cache}
}

// ListCitizens returns one page of imported records, most recently imported
// first, plus the total matching the filters. Out-of-range pages come back
// as an empty page with the correct total.
func (s *registryService) ListCitizens(ctx context.Context, filters model.CitizenFilters, page model.Pagination) ([]model.NINRecord, int64, error) {
	page.Normalize()

	records, err := s.ninRepo.Find(ctx, filters, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list citizens: %w", err)
	}
	total, err := s.ninRepo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count citizens: %w", err)
	}
	return records, total, nil
}

// ListRegistrations returns one page of public submissions, newest first.
func (s *registryService) ListRegistrations(ctx context.Context, page model.Pagination) ([]model.Registration, int64, error) {
	page.Normalize()

	regs, err := s.regRepo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	total, err := s.regRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return regs, total, nil
}

// GetDashboardStats computes point-in-time counters. newToday is a sliding
// 24-hour window from call time, not a calendar-day counter. Results are
// cached briefly in Redis when a client is configured; cache failures fall
// through to the database.
func (s *registryService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			stats := &model.DashboardStats{}
			if err := json.Unmarshal(cached, stats); err == nil {
				return stats, nil
			}
		}
	}

	stats := &model.DashboardStats{}
	var err error

	if stats.TotalNINs, err = s.ninRepo.Count(ctx, model.CitizenFilters{}); err != nil {
		return nil, fmt.Errorf("failed to count nin records: %w", err)
	}
	if stats.TotalRegistrations, err = s.regRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if stats.TotalPVC, err = s.regRepo.CountByPVC(ctx, model.PVCStatusYes); err != nil {
		return nil, fmt.Errorf("failed to count pvc holders: %w", err)
	}
	if stats.TotalNonPVC, err = s.regRepo.CountByPVC(ctx, model.PVCStatusNo); err != nil {
		return nil, fmt.Errorf("failed to count non-pvc holders: %w", err)
	}

	oneDayAgo := time.Now().Add(-24 * time.Hour)
	if stats.NewToday, err = s.regRepo.CountCreatedSince(ctx, oneDayAgo); err != nil {
		return nil, fmt.Errorf("failed to count recent registrations: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache dashboard stats: %v", err)
			}
		}
	}

	return stats, nil
}
