package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"h2grid/internal/assets"
	"h2grid/internal/models"
	"h2grid/internal/utils"
)

type AssetStore interface {
	Create(ctx context.Context, kind *assets.Kind, asset *models.Asset) error
	GetByID(ctx context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error)
	Update(ctx context.Context, kind *assets.Kind, id uuid.UUID, patch models.AssetPatch) (*models.Asset, error)
	Delete(ctx context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error)
	ListByOwner(ctx context.Context, kind *assets.Kind, ownerID uuid.UUID) ([]models.Asset, error)
}

// MutationRecorder is told about every successful asset write.
type MutationRecorder interface {
	AssetMutation(kind, op string)
}

type nopRecorder struct{}

func (nopRecorder) AssetMutation(string, string) {}

// AssetService implements create, update, delete and lookup once for every
// asset kind.
type AssetService struct {
	store    AssetStore
	recorder MutationRecorder
	log      *zap.Logger
}

func NewAssetService(store AssetStore, recorder MutationRecorder, log *zap.Logger) *AssetService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &AssetService{store: store, recorder: recorder, log: log}
}

func (s *AssetService) Create(ctx context.Context, kind *assets.Kind, input map[string]any) (*models.Asset, error) {
	asset, err := kind.ParseCreate(input)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, kind, asset); err != nil {
		return nil, err
	}

	s.recorder.AssetMutation(kind.Name, "create")
	s.log.Info("asset created",
		zap.String("kind", kind.Name),
		zap.String("id", asset.ID.String()),
		zap.String("owner", asset.ProjectDeveloperID.String()),
	)
	return asset, nil
}

func (s *AssetService) Get(ctx context.Context, kind *assets.Kind, rawID string) (*models.Asset, error) {
	id, err := utils.ParseID(rawID, idLabel(kind))
	if err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, kind, id)
}

func (s *AssetService) Update(ctx context.Context, kind *assets.Kind, rawID string, input map[string]any) (*models.Asset, error) {
	id, err := utils.ParseID(rawID, idLabel(kind))
	if err != nil {
		return nil, err
	}

	patch, err := kind.ParseUpdate(input)
	if err != nil {
		return nil, err
	}

	asset, err := s.store.Update(ctx, kind, id, patch)
	if err != nil {
		return nil, err
	}

	s.recorder.AssetMutation(kind.Name, "update")
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, kind *assets.Kind, rawID string) (*models.Asset, error) {
	id, err := utils.ParseID(rawID, idLabel(kind))
	if err != nil {
		return nil, err
	}

	asset, err := s.store.Delete(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	s.recorder.AssetMutation(kind.Name, "delete")
	s.log.Info("asset deleted", zap.String("kind", kind.Name), zap.String("id", id.String()))
	return asset, nil
}

// ListByOwner reads the four kinds concurrently. Any failed read fails the
// whole call.
func (s *AssetService) ListByOwner(ctx context.Context, rawOwnerID string) (*models.DeveloperProjects, error) {
	ownerID, err := utils.ParseID(rawOwnerID, "project developer")
	if err != nil {
		return nil, err
	}

	out := &models.DeveloperProjects{}
	targets := map[*assets.Kind]*[]models.Asset{
		assets.DistributionHub: &out.DistributionHubs,
		assets.Pipeline:        &out.Pipelines,
		assets.Plant:           &out.Plants,
		assets.Storage:         &out.Storage,
	}

	g, gctx := errgroup.WithContext(ctx)
	for kind, dst := range targets {
		g.Go(func() error {
			list, err := s.store.ListByOwner(gctx, kind, ownerID)
			if err != nil {
				return err
			}
			if list == nil {
				list = []models.Asset{}
			}
			*dst = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func idLabel(kind *assets.Kind) string {
	return strings.ToLower(kind.Label)
}
