package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migrations are idempotent and run in order on every boot.
var Migrations = []string{
	createProjectDevelopersTable,
	createCompaniesTable,
	createPlantsTable,
	createStoragesTable,
	createPipelinesTable,
	createDistributionHubsTable,
	createMarketplaceItemsTable,
	createReadingsTables,
}

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	for i, migration := range Migrations {
		log.Debug("running migration", zap.Int("step", i+1), zap.Int("total", len(Migrations)))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("all migrations completed", zap.Int("count", len(Migrations)))
	return nil
}

const createProjectDevelopersTable = `
CREATE TABLE IF NOT EXISTS project_developers (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  asset_type TEXT NOT NULL DEFAULT ''
    CHECK (asset_type IN ('plant', 'storage', 'pipeline', 'distribution_hub', '')),
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const createCompaniesTable = `
CREATE TABLE IF NOT EXISTS companies (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  name TEXT NOT NULL,
  website TEXT NOT NULL,
  gstin TEXT,
  about_us TEXT NOT NULL,
  company_size INT NOT NULL,
  location TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  contact TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  asset_type TEXT NOT NULL
    CHECK (asset_type IN ('plant', 'storage', 'pipeline', 'distribution_hub')),
  latitude DOUBLE PRECISION NOT NULL,
  longitude DOUBLE PRECISION NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

// Each asset table carries a compound UNIQUE (project_name, project_developer_id).
// Duplicate creates fail inside the insert with SQLSTATE 23505.
const createPlantsTable = `
CREATE TABLE IF NOT EXISTS plants (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_name TEXT NOT NULL,
  project_developer_id UUID NOT NULL,
  budget DOUBLE PRECISION NOT NULL CHECK (budget > 0),
  capacity DOUBLE PRECISION NOT NULL CHECK (capacity > 0),
  location TEXT[] NOT NULL DEFAULT '{}',
  report TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  preferred_source TEXT NOT NULL,
  logistic_preference TEXT NOT NULL
    CHECK (logistic_preference IN ('port', 'demand', 'pipeline', 'plant')),
  CONSTRAINT plants_project_owner_key UNIQUE (project_name, project_developer_id)
);

CREATE INDEX IF NOT EXISTS idx_plants_project_developer_id ON plants(project_developer_id);
`

const createStoragesTable = `
CREATE TABLE IF NOT EXISTS storages (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_name TEXT NOT NULL,
  project_developer_id UUID NOT NULL,
  budget DOUBLE PRECISION NOT NULL CHECK (budget > 0),
  capacity DOUBLE PRECISION NOT NULL CHECK (capacity > 0),
  location TEXT[] NOT NULL DEFAULT '{}',
  report TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  technology TEXT NOT NULL DEFAULT '',
  proximity_preference TEXT NOT NULL
    CHECK (proximity_preference IN ('plant', 'demand', 'port')),
  CONSTRAINT storages_project_owner_key UNIQUE (project_name, project_developer_id)
);

CREATE INDEX IF NOT EXISTS idx_storages_project_developer_id ON storages(project_developer_id);
`

const createPipelinesTable = `
CREATE TABLE IF NOT EXISTS pipelines (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_name TEXT NOT NULL,
  project_developer_id UUID NOT NULL,
  budget DOUBLE PRECISION NOT NULL CHECK (budget > 0),
  capacity DOUBLE PRECISION NOT NULL CHECK (capacity > 0),
  location TEXT[] NOT NULL DEFAULT '{}',
  report TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  length_estimate DOUBLE PRECISION NOT NULL CHECK (length_estimate > 0),
  route_preference TEXT NOT NULL,
  CONSTRAINT pipelines_project_owner_key UNIQUE (project_name, project_developer_id)
);

CREATE INDEX IF NOT EXISTS idx_pipelines_project_developer_id ON pipelines(project_developer_id);
`

const createDistributionHubsTable = `
CREATE TABLE IF NOT EXISTS distribution_hubs (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_name TEXT NOT NULL,
  project_developer_id UUID NOT NULL,
  budget DOUBLE PRECISION NOT NULL CHECK (budget > 0),
  capacity DOUBLE PRECISION NOT NULL CHECK (capacity > 0),
  location TEXT[] NOT NULL DEFAULT '{}',
  report TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  service_radius DOUBLE PRECISION NOT NULL CHECK (service_radius > 0),
  proximity_preference TEXT NOT NULL,
  land_requirement DOUBLE PRECISION NOT NULL CHECK (land_requirement > 0),
  CONSTRAINT distribution_hubs_project_owner_key UNIQUE (project_name, project_developer_id)
);

CREATE INDEX IF NOT EXISTS idx_distribution_hubs_project_developer_id ON distribution_hubs(project_developer_id);
`

const createMarketplaceItemsTable = `
CREATE TABLE IF NOT EXISTS marketplace_items (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  quantity INT NOT NULL DEFAULT 1,
  seller_email TEXT NOT NULL,
  seller_contact TEXT NOT NULL,
  seller_name TEXT NOT NULL,
  images JSONB NOT NULL DEFAULT '[]',
  tags JSONB NOT NULL DEFAULT '[]',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_marketplace_items_category ON marketplace_items(category);
CREATE INDEX IF NOT EXISTS idx_marketplace_items_created_at ON marketplace_items(created_at);
`

const createReadingsTables = `
CREATE TABLE IF NOT EXISTS wind_readings (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
  longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
  speed DOUBLE PRECISION NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS solar_readings (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
  longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
  unit DOUBLE PRECISION NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`
