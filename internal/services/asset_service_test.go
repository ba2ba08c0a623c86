package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"h2grid/internal/apperr"
	"h2grid/internal/assets"
)

func newAssetService(t *testing.T) (*AssetService, *fakeAssetStore, *fakeRecorder) {
	t.Helper()
	store := newFakeAssetStore()
	rec := &fakeRecorder{}
	return NewAssetService(store, rec, zap.NewNop()), store, rec
}

func plantInput(owner uuid.UUID, name string) map[string]any {
	return map[string]any{
		"project_name":         name,
		"budget":               1000.0,
		"capacity":             50.0,
		"preferred_source":     "wind",
		"logistic_preference":  "pipeline",
		"project_developer_id": owner.String(),
	}
}

func TestAssetService_CreateAndConflict(t *testing.T) {
	svc, _, rec := newAssetService(t)
	ctx := context.Background()
	owner := uuid.New()

	a, err := svc.Create(ctx, assets.Plant, plantInput(owner, "Alpha"))
	require.NoError(t, err)
	assert.Equal(t, "", a.Report)
	assert.NotEqual(t, uuid.Nil, a.ID)

	_, err = svc.Create(ctx, assets.Plant, plantInput(owner, "Alpha"))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	out, err := svc.ListByOwner(ctx, owner.String())
	require.NoError(t, err)
	require.Len(t, out.Plants, 1)
	assert.Equal(t, a.ID, out.Plants[0].ID)

	// Another owner may reuse the name.
	_, err = svc.Create(ctx, assets.Plant, plantInput(uuid.New(), "Alpha"))
	require.NoError(t, err)

	assert.Equal(t, []recordedMutation{{"plant", "create"}, {"plant", "create"}}, rec.mutations)
}

func TestAssetService_CreateRejectsBadEnum(t *testing.T) {
	svc, _, rec := newAssetService(t)
	in := plantInput(uuid.New(), "Alpha")
	in["logistic_preference"] = "train"

	_, err := svc.Create(context.Background(), assets.Plant, in)
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, rec.mutations)
}

func TestAssetService_UpdateDeleteErrors(t *testing.T) {
	svc, _, _ := newAssetService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, assets.Plant, "not-an-id", map[string]any{"report": "x"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Update(ctx, assets.Plant, uuid.NewString(), map[string]any{"report": "x"})
	assert.True(t, apperr.IsNotFound(err))

	a, err := svc.Create(ctx, assets.Plant, plantInput(uuid.New(), "Alpha"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, assets.Plant, a.ID.String(), map[string]any{})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Delete(ctx, assets.Plant, "42")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Delete(ctx, assets.Plant, uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
}

func TestAssetService_UpdateOnlyTouchesSuppliedFields(t *testing.T) {
	svc, _, rec := newAssetService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, assets.Plant, plantInput(uuid.New(), "Alpha"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, assets.Plant, a.ID.String(), map[string]any{"report": "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Report)
	assert.Equal(t, "Alpha", updated.ProjectName)
	assert.Equal(t, "pipeline", updated.Attributes["logistic_preference"])
	assert.Contains(t, rec.mutations, recordedMutation{"plant", "update"})
}

func TestAssetService_ListByOwner(t *testing.T) {
	svc, _, _ := newAssetService(t)
	ctx := context.Background()
	owner := uuid.New()

	plant, err := svc.Create(ctx, assets.Plant, plantInput(owner, "Alpha"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, assets.Pipeline, map[string]any{
		"project_name":         "Line 1",
		"budget":               10.0,
		"capacity":             2.0,
		"length_estimate":      120.0,
		"route_preference":     "inland",
		"project_developer_id": owner.String(),
	})
	require.NoError(t, err)

	out, err := svc.ListByOwner(ctx, owner.String())
	require.NoError(t, err)
	assert.Len(t, out.Plants, 1)
	assert.Len(t, out.Pipelines, 1)
	assert.NotNil(t, out.Storage)
	assert.Empty(t, out.Storage)
	assert.NotNil(t, out.DistributionHubs)

	_, err = svc.Delete(ctx, assets.Plant, plant.ID.String())
	require.NoError(t, err)

	out, err = svc.ListByOwner(ctx, owner.String())
	require.NoError(t, err)
	assert.Empty(t, out.Plants)

	_, err = svc.ListByOwner(ctx, "bogus")
	assert.True(t, apperr.IsValidation(err))
}

func TestAssetService_ListByOwnerFailsWholesale(t *testing.T) {
	svc, store, _ := newAssetService(t)
	store.failFor = assets.Storage.Table

	_, err := svc.ListByOwner(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
