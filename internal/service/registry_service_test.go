package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"citizen_registry/internal/model"
	"citizen_registry/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNINRecords(repo *memNINRepo, n int) {
	for i := 0; i < n; i++ {
		nin := fmt.Sprintf("1234567%04d", i)
		repo.UpsertByHash(context.Background(), &model.NINRecord{
			NINHash:   utils.HashNIN(nin),
			NINMasked: utils.MaskNIN(nin),
			PVCStatus: model.PVCStatusNo,
		})
	}
}

func TestListCitizens_OutOfRangePage(t *testing.T) {
	repo := newMemNINRepo()
	seedNINRecords(repo, 5)
	svc := NewRegistryService(repo, newMemRegRepo(), nil)

	records, total, err := svc.ListCitizens(context.Background(), model.CitizenFilters{}, model.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Empty(t, records)
	assert.Equal(t, int64(5), total)
}

func TestListCitizens_DefaultsApplied(t *testing.T) {
	repo := newMemNINRepo()
	seedNINRecords(repo, 3)
	svc := NewRegistryService(repo, newMemRegRepo(), nil)

	records, total, err := svc.ListCitizens(context.Background(), model.CitizenFilters{}, model.Pagination{})
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, int64(3), total)
}

func TestListCitizens_PVCFilter(t *testing.T) {
	repo := newMemNINRepo()
	seedNINRecords(repo, 4)
	pvcHolder := &model.NINRecord{
		NINHash:   utils.HashNIN("99999999999"),
		NINMasked: utils.MaskNIN("99999999999"),
		PVCStatus: model.PVCStatusYes,
	}
	require.NoError(t, repo.UpsertByHash(context.Background(), pvcHolder))
	svc := NewRegistryService(repo, newMemRegRepo(), nil)

	yes := model.PVCStatusYes
	records, total, err := svc.ListCitizens(context.Background(), model.CitizenFilters{PVCStatus: &yes}, model.Pagination{})
	require.NoError(t, err)

	assert.Len(t, records, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, pvcHolder.NINMasked, records[0].NINMasked)
}

func addRegistration(repo *memRegRepo, nin string, pvc string, createdAt time.Time) {
	var pvcPtr *string
	if pvc != "" {
		pvcPtr = &pvc
	}
	repo.regs = append(repo.regs, &model.Registration{
		ID:        nin,
		FirstName: "A",
		Surname:   "B",
		Phone:     "080",
		NINHash:   utils.HashNIN(nin),
		NINMasked: utils.MaskNIN(nin),
		PVCStatus: pvcPtr,
		Status:    model.RegistrationStatusPending,
		CreatedAt: createdAt,
	})
}

func TestGetDashboardStats(t *testing.T) {
	ninRepo := newMemNINRepo()
	seedNINRecords(ninRepo, 7)
	regRepo := newMemRegRepo()

	now := time.Now()
	addRegistration(regRepo, "11111111111", model.PVCStatusYes, now.Add(-2*time.Hour))
	addRegistration(regRepo, "22222222222", model.PVCStatusNo, now.Add(-23*time.Hour))
	addRegistration(regRepo, "33333333333", model.PVCStatusNo, now.Add(-25*time.Hour)) // outside the window

	svc := NewRegistryService(ninRepo, regRepo, nil)
	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TotalNINs)
	assert.Equal(t, int64(3), stats.TotalRegistrations)
	assert.Equal(t, int64(1), stats.TotalPVC)
	assert.Equal(t, int64(2), stats.TotalNonPVC)
	// Sliding 24h window, not a calendar day
	assert.Equal(t, int64(2), stats.NewToday)
}

func TestGetDashboardStats_CachedInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	ninRepo := newMemNINRepo()
	seedNINRecords(ninRepo, 2)
	regRepo := newMemRegRepo()
	svc := NewRegistryService(ninRepo, regRepo, cache)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalNINs)

	// New data does not show until the cache entry expires
	seedNINRecords(ninRepo, 10)
	cached, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), cached.TotalNINs)

	mr.FastForward(statsCacheTTL + time.Second)
	fresh, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), fresh.TotalNINs)
}
