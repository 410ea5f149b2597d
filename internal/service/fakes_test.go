package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"
)

// memNINRepo is an in-memory NINRecordRepository keyed by nin_hash.
type memNINRepo struct {
	records    map[string]*model.NINRecord
	failHashes map[string]bool // hashes whose upserts fail
	nextID     int64
}

func newMemNINRepo() *memNINRepo {
	return &memNINRepo{
		records:    make(map[string]*model.NINRecord),
		failHashes: make(map[string]bool),
	}
}

func (m *memNINRepo) UpsertByHash(_ context.Context, rec *model.NINRecord) error {
	if m.failHashes[rec.NINHash] {
		return errors.New("simulated persistence failure")
	}
	if existing, ok := m.records[rec.NINHash]; ok {
		rec.ID = existing.ID
		rec.ImportedAt = existing.ImportedAt
	} else {
		m.nextID++
		rec.ID = m.nextID
		rec.ImportedAt = time.Now()
	}
	cp := *rec
	m.records[rec.NINHash] = &cp
	return nil
}

func (m *memNINRepo) FindByHash(_ context.Context, hash string) (*model.NINRecord, error) {
	if rec, ok := m.records[hash]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (m *memNINRepo) Find(_ context.Context, filters model.CitizenFilters, page model.Pagination) ([]model.NINRecord, error) {
	matched := m.matching(filters)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ImportedAt.After(matched[j].ImportedAt)
	})

	start := page.Offset()
	if start >= len(matched) {
		return nil, nil
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (m *memNINRepo) Count(_ context.Context, filters model.CitizenFilters) (int64, error) {
	return int64(len(m.matching(filters))), nil
}

func (m *memNINRepo) matching(filters model.CitizenFilters) []model.NINRecord {
	var matched []model.NINRecord
	for _, rec := range m.records {
		if filters.PVCStatus != nil && rec.PVCStatus != *filters.PVCStatus {
			continue
		}
		if filters.State != nil && (rec.State == nil || *rec.State != *filters.State) {
			continue
		}
		matched = append(matched, *rec)
	}
	return matched
}

// memRegRepo is an in-memory RegistrationRepository.
type memRegRepo struct {
	regs      []*model.Registration
	createErr error // forced error for the next Create
}

func newMemRegRepo() *memRegRepo {
	return &memRegRepo{}
}

func (m *memRegRepo) Create(_ context.Context, reg *model.Registration) error {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return err
	}
	for _, existing := range m.regs {
		if existing.NINHash == reg.NINHash {
			return repository.ErrDuplicateRegistration
		}
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}
	cp := *reg
	m.regs = append(m.regs, &cp)
	return nil
}

func (m *memRegRepo) ExistsByHash(_ context.Context, hash string) (bool, error) {
	for _, reg := range m.regs {
		if reg.NINHash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRegRepo) FindAll(_ context.Context, page model.Pagination) ([]model.Registration, error) {
	regs := make([]model.Registration, 0, len(m.regs))
	for _, reg := range m.regs {
		regs = append(regs, *reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})

	start := page.Offset()
	if start >= len(regs) {
		return nil, nil
	}
	end := start + page.Limit
	if end > len(regs) {
		end = len(regs)
	}
	return regs[start:end], nil
}

func (m *memRegRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.regs)), nil
}

func (m *memRegRepo) CountByPVC(_ context.Context, status string) (int64, error) {
	var n int64
	for _, reg := range m.regs {
		if reg.PVCStatus != nil && *reg.PVCStatus == status {
			n++
		}
	}
	return n, nil
}

func (m *memRegRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, reg := range m.regs {
		if !reg.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// fakeImageStore records uploads and returns a fixed URL.
type fakeImageStore struct {
	saved       [][]byte
	contentType string
	err         error
}

func (f *fakeImageStore) SaveImage(_ context.Context, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, data)
	f.contentType = contentType
	return "https://images.example/citizens/fixed.jpg", nil
}
