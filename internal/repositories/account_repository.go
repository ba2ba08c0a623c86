package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
)

var errAccountExists = apperr.Conflict("An account with this email already exists")

type ProjectDeveloperRepository struct {
	pool *pgxpool.Pool
}

func NewProjectDeveloperRepository(pool *pgxpool.Pool) *ProjectDeveloperRepository {
	return &ProjectDeveloperRepository{pool: pool}
}

func (r *ProjectDeveloperRepository) Create(ctx context.Context, account models.Account) error {
	dev, ok := account.(*models.ProjectDeveloper)
	if !ok {
		return fmt.Errorf("project developer repository cannot store %T", account)
	}
	dev.Prepare()

	now := time.Now().UTC()
	dev.CreatedAt, dev.UpdatedAt = now, now

	query := `
		INSERT INTO project_developers (id, name, email, password_hash, asset_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		dev.ID,
		dev.Name,
		dev.Email,
		dev.PasswordHash,
		dev.AssetType,
		dev.CreatedAt,
		dev.UpdatedAt,
	)
	return accountError(err)
}

// FindByEmail returns nil, nil when no developer has the email.
func (r *ProjectDeveloperRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `SELECT id, name, email, password_hash, asset_type, created_at, updated_at
		FROM project_developers WHERE email = $1`
	return r.findOne(ctx, query, models.NormalizeEmail(email))
}

func (r *ProjectDeveloperRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	query := `SELECT id, name, email, password_hash, asset_type, created_at, updated_at
		FROM project_developers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *ProjectDeveloperRepository) findOne(ctx context.Context, query string, arg any) (models.Account, error) {
	var dev models.ProjectDeveloper
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&dev.ID,
		&dev.Name,
		&dev.Email,
		&dev.PasswordHash,
		&dev.AssetType,
		&dev.CreatedAt,
		&dev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dev, nil
}

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companyColumns = `id, name, website, gstin, about_us, company_size, location, email, contact,
		password_hash, asset_type, latitude, longitude, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, account models.Account) error {
	co, ok := account.(*models.Company)
	if !ok {
		return fmt.Errorf("company repository cannot store %T", account)
	}
	co.Prepare()

	now := time.Now().UTC()
	co.CreatedAt, co.UpdatedAt = now, now

	query := `INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(ctx, query,
		co.ID,
		co.Name,
		co.Website,
		co.GSTIN,
		co.AboutUs,
		co.CompanySize,
		co.Location,
		co.Email,
		co.Contact,
		co.PasswordHash,
		co.AssetType,
		co.Latitude,
		co.Longitude,
		co.CreatedAt,
		co.UpdatedAt,
	)
	return accountError(err)
}

// FindByEmail returns nil, nil when no company has the email.
func (r *CompanyRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE email = $1`
	return r.findOne(ctx, query, models.NormalizeEmail(email))
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *CompanyRepository) findOne(ctx context.Context, query string, arg any) (models.Account, error) {
	var co models.Company
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&co.ID,
		&co.Name,
		&co.Website,
		&co.GSTIN,
		&co.AboutUs,
		&co.CompanySize,
		&co.Location,
		&co.Email,
		&co.Contact,
		&co.PasswordHash,
		&co.AssetType,
		&co.Latitude,
		&co.Longitude,
		&co.CreatedAt,
		&co.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &co, nil
}

func accountError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return errAccountExists
	}
	return fmt.Errorf("failed to save account: %w", err)
}
