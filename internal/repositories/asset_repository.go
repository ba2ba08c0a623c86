package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"h2grid/internal/apperr"
	"h2grid/internal/assets"
	"h2grid/internal/models"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// AssetRepository stores every asset kind; the descriptor picks the table and
// the kind-specific columns.
type AssetRepository struct {
	pool *pgxpool.Pool
}

func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

func (r *AssetRepository) Create(ctx context.Context, kind *assets.Kind, asset *models.Asset) error {
	asset.Prepare()

	cols := kind.Columns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		kind.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	args := []any{
		asset.ID,
		asset.ProjectName,
		asset.ProjectDeveloperID,
		asset.Budget,
		asset.Capacity,
		asset.Location,
		asset.Report,
		asset.CreatedAt,
		asset.UpdatedAt,
	}
	for _, f := range kind.Fields {
		args = append(args, asset.Attributes[f.Name])
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return translateError(kind, err)
	}
	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, strings.Join(kind.Columns(), ", "), kind.Table)

	asset, err := scanAsset(kind, r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(kind, err)
	}
	return asset, nil
}

// Update applies the patch and returns the row as stored afterwards. Patch keys
// must already be validated column names.
func (r *AssetRepository) Update(ctx context.Context, kind *assets.Kind, id uuid.UUID, patch models.AssetPatch) (*models.Asset, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys)+1)
	args := []any{id}
	for _, k := range keys {
		args = append(args, patch[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $1 RETURNING %s`,
		kind.Table,
		strings.Join(sets, ", "),
		strings.Join(kind.Columns(), ", "),
	)

	asset, err := scanAsset(kind, r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(kind, err)
	}
	return asset, nil
}

// Delete removes the row and returns its last state.
func (r *AssetRepository) Delete(ctx context.Context, kind *assets.Kind, id uuid.UUID) (*models.Asset, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s`, kind.Table, strings.Join(kind.Columns(), ", "))

	asset, err := scanAsset(kind, r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(kind, err)
	}
	return asset, nil
}

func (r *AssetRepository) ListByOwner(ctx context.Context, kind *assets.Kind, ownerID uuid.UUID) ([]models.Asset, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE project_developer_id = $1 ORDER BY created_at ASC`,
		strings.Join(kind.Columns(), ", "),
		kind.Table,
	)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Table, err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Asset, error) {
		a, err := scanAsset(kind, row)
		if err != nil {
			return models.Asset{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", kind.Table, err)
	}
	if list == nil {
		list = []models.Asset{}
	}
	return list, nil
}

func scanAsset(kind *assets.Kind, row pgx.Row) (*models.Asset, error) {
	a := models.Asset{
		Kind:       kind.Name,
		Attributes: make(map[string]any, len(kind.Fields)),
	}

	dest := []any{
		&a.ID,
		&a.ProjectName,
		&a.ProjectDeveloperID,
		&a.Budget,
		&a.Capacity,
		&a.Location,
		&a.Report,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	extra := make([]any, len(kind.Fields))
	for i, f := range kind.Fields {
		switch f.Type {
		case assets.Number:
			extra[i] = new(float64)
		default:
			extra[i] = new(string)
		}
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, f := range kind.Fields {
		switch v := extra[i].(type) {
		case *float64:
			a.Attributes[f.Name] = *v
		case *string:
			a.Attributes[f.Name] = *v
		}
	}
	if a.Location == nil {
		a.Location = []string{}
	}
	return &a, nil
}

func translateError(kind *assets.Kind, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(kind.Label + " not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Conflict(kind.Label + " with the same project name and developer ID already exists")
		case pgCheckViolation:
			return apperr.Validationf("%s violates constraint %s", strings.ToLower(kind.Label), pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s query failed: %w", kind.Table, err)
}
