package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Asset is one hydrogen-infrastructure project record. The columns every kind
// shares are typed fields; kind-specific columns live in Attributes keyed by
// their column name.
type Asset struct {
	ID                 uuid.UUID
	Kind               string
	ProjectName        string
	ProjectDeveloperID uuid.UUID
	Budget             float64
	Capacity           float64
	Location           []string
	Report             string
	Attributes         map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (a *Asset) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Location == nil {
		a.Location = []string{}
	}
	if a.Attributes == nil {
		a.Attributes = map[string]any{}
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
}

// MarshalJSON flattens the asset into a single document.
func (a Asset) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(a.Attributes)+9)
	for k, v := range a.Attributes {
		doc[k] = v
	}
	location := a.Location
	if location == nil {
		location = []string{}
	}
	doc["_id"] = a.ID
	doc["project_name"] = a.ProjectName
	doc["project_developer_id"] = a.ProjectDeveloperID
	doc["budget"] = a.Budget
	doc["capacity"] = a.Capacity
	doc["location"] = location
	doc["report"] = a.Report
	doc["createdAt"] = a.CreatedAt
	doc["updatedAt"] = a.UpdatedAt
	return json.Marshal(doc)
}

// AssetPatch maps column names to already validated values.
type AssetPatch map[string]any

// DeveloperProjects is the aggregate read of everything one developer owns.
type DeveloperProjects struct {
	DistributionHubs []Asset `json:"distributionHubs"`
	Pipelines        []Asset `json:"pipelines"`
	Plants           []Asset `json:"plants"`
	Storage          []Asset `json:"storage"`
}
