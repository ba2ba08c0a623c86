package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"h2grid/internal/apperr"
	"h2grid/internal/assets"
	"h2grid/internal/models"
)

type fakeAssetStore struct {
	mu      sync.Mutex
	rows    map[string]map[uuid.UUID]*models.Asset
	failFor string
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{rows: map[string]map[uuid.UUID]*models.Asset{}}
}

func (f *fakeAssetStore) table(kind *assets.Kind) map[uuid.UUID]*models.Asset {
	t, ok := f.rows[kind.Table]
	if !ok {
		t = map[uuid.UUID]*models.Asset{}
		f.rows[kind.Table] = t
	}
	return t
}

func (f *fakeAssetStore) Create(_ context.Context, kind *assets.Kind, asset *models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset.Prepare()
	for _, a := range f.table(kind) {
		if a.ProjectName == asset.ProjectName && a.ProjectDeveloperID == asset.ProjectDeveloperID {
			return apperr.Conflict(kind.Label + " with the same project name and developer ID already exists")
		}
	}
	cp := *asset
	f.table(kind)[asset.ID] = &cp
	return nil
}

func (f *fakeAssetStore) GetByID(_ context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssetStore) Update(_ context.Context, kind *assets.Kind, id uuid.UUID, patch models.AssetPatch) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	for k, v := range patch {
		switch k {
		case "report":
			a.Report = v.(string)
		case "project_name":
			a.ProjectName = v.(string)
		case "budget":
			a.Budget = v.(float64)
		default:
			a.Attributes[k] = v
		}
	}
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.table(kind)[id]
	if !ok {
		return nil, apperr.NotFound(kind.Label + " not found")
	}
	delete(f.table(kind), id)
	return a, nil
}

func (f *fakeAssetStore) ListByOwner(_ context.Context, kind *assets.Kind, owner uuid.UUID) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor == kind.Table {
		return nil, errors.New("connection reset")
	}
	var out []models.Asset
	for _, a := range f.table(kind) {
		if a.ProjectDeveloperID == owner {
			out = append(out, *a)
		}
	}
	return out, nil
}

type recordedMutation struct{ kind, op string }

type fakeRecorder struct {
	mu        sync.Mutex
	mutations []recordedMutation
}

func (r *fakeRecorder) AssetMutation(kind, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, recordedMutation{kind, op})
}

type fakeAccountStore struct {
	byID map[uuid.UUID]models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byID: map[uuid.UUID]models.Account{}}
}

func (f *fakeAccountStore) Create(_ context.Context, account models.Account) error {
	account.Prepare()
	f.byID[account.AccountID()] = account
	return nil
}

func (f *fakeAccountStore) FindByEmail(_ context.Context, email string) (models.Account, error) {
	for _, a := range f.byID {
		if a.AccountEmail() == models.NormalizeEmail(email) {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) FindByID(_ context.Context, id uuid.UUID) (models.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, nil
}

type fakeDenylist struct {
	denied map[string]time.Duration
}

func (d *fakeDenylist) Deny(_ context.Context, jti string, ttl time.Duration) error {
	d.denied[jti] = ttl
	return nil
}

func (d *fakeDenylist) IsDenied(_ context.Context, jti string) (bool, error) {
	_, ok := d.denied[jti]
	return ok, nil
}

type fakeListingStore struct {
	listings []*models.Listing
	changes  map[string]any
}

func (f *fakeListingStore) Create(_ context.Context, l *models.Listing) error {
	_ = l.BeforeCreate(nil)
	f.listings = append(f.listings, l)
	return nil
}

func (f *fakeListingStore) List(context.Context) ([]models.Listing, error) {
	out := []models.Listing{}
	for i := len(f.listings) - 1; i >= 0; i-- {
		out = append(out, *f.listings[i])
	}
	return out, nil
}

func (f *fakeListingStore) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperr.NotFound("Marketplace item not found")
}

func (f *fakeListingStore) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Listing, error) {
	f.changes = changes
	return f.FindByID(ctx, id)
}

func (f *fakeListingStore) Analytics(context.Context) (*models.MarketplaceAnalytics, error) {
	out := &models.MarketplaceAnalytics{CategoryBreakdown: []models.CategoryCount{}}
	for _, l := range f.listings {
		out.TotalItems++
		out.TotalValue += l.Price * float64(l.Quantity)
	}
	return out, nil
}

type fakeReadingStore struct {
	wind  []models.WindReading
	solar []models.SolarReading
}

func (f *fakeReadingStore) CreateWind(_ context.Context, r *models.WindReading) error {
	f.wind = append(f.wind, *r)
	return nil
}

func (f *fakeReadingStore) CreateSolar(_ context.Context, r *models.SolarReading) error {
	f.solar = append(f.solar, *r)
	return nil
}

func (f *fakeReadingStore) ListWind(context.Context) ([]models.WindReading, error) {
	return f.wind, nil
}

func (f *fakeReadingStore) ListSolar(context.Context) ([]models.SolarReading, error) {
	return f.solar, nil
}

func (f *fakeReadingStore) ImportBatch(_ context.Context, wind []models.WindReading, solar []models.SolarReading) error {
	f.wind = append(f.wind, wind...)
	f.solar = append(f.solar, solar...)
	return nil
}
