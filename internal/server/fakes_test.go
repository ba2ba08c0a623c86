package server

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"h2grid/internal/apperr"
	"h2grid/internal/assets"
	"h2grid/internal/models"
)

type memAssets struct {
	mu   sync.Mutex
	rows map[string]map[uuid.UUID]models.Asset
}

func newMemAssets() *memAssets {
	return &memAssets{rows: map[string]map[uuid.UUID]models.Asset{}}
}

func (m *memAssets) table(kind *assets.Kind) map[uuid.UUID]models.Asset {
	if m.rows[kind.Table] == nil {
		m.rows[kind.Table] = map[uuid.UUID]models.Asset{}
	}
	return m.rows[kind.Table]
}

func (m *memAssets) Create(_ context.Context, kind *assets.Kind, a *models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.table(kind) {
		if row.ProjectName == a.ProjectName && row.ProjectDeveloperID == a.ProjectDeveloperID {
			return apperr.Conflict(kind.Label + " with the same project name and developer ID already exists")
		}
	}
	a.Prepare()
	m.table(kind)[a.ID] = *a
	return nil
}

func (m *memAssets) GetByID(_ context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	return &row, nil
}

func (m *memAssets) Update(_ context.Context, kind *assets.Kind, id uuid.UUID, patch models.AssetPatch) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	if r, ok := patch["report"].(string); ok {
		row.Report = r
	}
	m.table(kind)[id] = row
	return &row, nil
}

func (m *memAssets) Delete(_ context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	delete(m.table(kind), id)
	return &row, nil
}

func (m *memAssets) ListByOwner(_ context.Context, kind *assets.Kind, owner uuid.UUID) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Asset{}
	for _, row := range m.table(kind) {
		if row.ProjectDeveloperID == owner {
			out = append(out, row)
		}
	}
	return out, nil
}

type memAccounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[uuid.UUID]models.Account{}}
}

func (m *memAccounts) Create(_ context.Context, a models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Prepare()
	m.byID[a.AccountID()] = a
	return nil
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.AccountEmail() == models.NormalizeEmail(email) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAccounts) FindByID(_ context.Context, id uuid.UUID) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, nil
}

type memListings struct {
	items []*models.Listing
}

func (m *memListings) Create(_ context.Context, l *models.Listing) error {
	_ = l.BeforeCreate(nil)
	m.items = append(m.items, l)
	return nil
}

func (m *memListings) List(context.Context) ([]models.Listing, error) {
	out := []models.Listing{}
	for _, l := range m.items {
		out = append(out, *l)
	}
	return out, nil
}

func (m *memListings) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	for _, l := range m.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperr.NotFound("Marketplace item not found")
}

func (m *memListings) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Listing, error) {
	l, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p, ok := changes["price"].(float64); ok {
		l.Price = p
	}
	return l, nil
}

func (m *memListings) Analytics(context.Context) (*models.MarketplaceAnalytics, error) {
	out := &models.MarketplaceAnalytics{CategoryBreakdown: []models.CategoryCount{}}
	counts := map[string]int64{}
	for _, l := range m.items {
		out.TotalItems++
		out.TotalValue += l.Price * float64(l.Quantity)
		counts[l.Category]++
	}
	for c, n := range counts {
		out.CategoryBreakdown = append(out.CategoryBreakdown, models.CategoryCount{Category: c, Count: n})
	}
	return out, nil
}

type memReadings struct {
	wind  []models.WindReading
	solar []models.SolarReading
}

func (m *memReadings) CreateWind(_ context.Context, r *models.WindReading) error {
	_ = r.BeforeCreate(nil)
	m.wind = append(m.wind, *r)
	return nil
}

func (m *memReadings) CreateSolar(_ context.Context, r *models.SolarReading) error {
	_ = r.BeforeCreate(nil)
	m.solar = append(m.solar, *r)
	return nil
}

func (m *memReadings) ListWind(context.Context) ([]models.WindReading, error) {
	return append([]models.WindReading{}, m.wind...), nil
}

func (m *memReadings) ListSolar(context.Context) ([]models.SolarReading, error) {
	return append([]models.SolarReading{}, m.solar...), nil
}

func (m *memReadings) ImportBatch(_ context.Context, wind []models.WindReading, solar []models.SolarReading) error {
	m.wind = append(m.wind, wind...)
	m.solar = append(m.solar, solar...)
	return nil
}
