package assets

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2grid/internal/apperr"
)

func plantPayload() map[string]any {
	return map[string]any{
		"project_name":         "Kutch Green H2",
		"budget":               2500000.0,
		"capacity":             120.0,
		"preferred_source":     "solar",
		"logistic_preference":  "port",
		"project_developer_id": uuid.NewString(),
	}
}

func TestParseCreate_PlantDefaults(t *testing.T) {
	a, err := Plant.ParseCreate(plantPayload())
	require.NoError(t, err)

	assert.Equal(t, "plant", a.Kind)
	assert.Equal(t, "Kutch Green H2", a.ProjectName)
	assert.Equal(t, "", a.Report)
	assert.Equal(t, []string{}, a.Location)
	assert.Equal(t, "port", a.Attributes["logistic_preference"])
}

func TestParseCreate_RejectsEnumOutsideSet(t *testing.T) {
	in := plantPayload()
	in["logistic_preference"] = "train"

	_, err := Plant.ParseCreate(in)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "logistic_preference")
}

func TestParseCreate_RequiredAndFalsyFields(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(map[string]any)
		field string
	}{
		{"missing name", func(m map[string]any) { delete(m, "project_name") }, "project_name"},
		{"blank name", func(m map[string]any) { m["project_name"] = "   " }, "project_name"},
		{"zero budget", func(m map[string]any) { m["budget"] = 0.0 }, "budget"},
		{"negative capacity", func(m map[string]any) { m["capacity"] = -3.0 }, "capacity"},
		{"string budget", func(m map[string]any) { m["budget"] = "lots" }, "budget"},
		{"missing source", func(m map[string]any) { delete(m, "preferred_source") }, "preferred_source"},
		{"missing owner", func(m map[string]any) { delete(m, "project_developer_id") }, "project_developer_id"},
		{"malformed owner", func(m map[string]any) { m["project_developer_id"] = "abc" }, "project_developer_id"},
		{"bad location", func(m map[string]any) { m["location"] = []any{"ok", 4.0} }, "location"},
		{"unknown field", func(m map[string]any) { m["color"] = "green" }, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := plantPayload()
			tt.mut(in)
			_, err := Plant.ParseCreate(in)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseCreate_StorageTechnologyDefaultsEmpty(t *testing.T) {
	a, err := Storage.ParseCreate(map[string]any{
		"project_name":         "Salt cavern A",
		"budget":               10.0,
		"capacity":             3.0,
		"proximity_preference": "demand",
		"project_developer_id": uuid.NewString(),
		"location":             []any{"22.3", "70.1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "", a.Attributes["technology"])
	assert.Equal(t, []string{"22.3", "70.1"}, a.Location)
}

func TestParseCreate_DistributionHubFreeTextProximity(t *testing.T) {
	a, err := DistributionHub.ParseCreate(map[string]any{
		"budget":               100000.0,
		"project_name":         "X",
		"capacity":             5000.0,
		"service_radius":       60.0,
		"proximity_preference": "near pipeline",
		"land_requirement":     2000.0,
		"project_developer_id": uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Equal(t, "near pipeline", a.Attributes["proximity_preference"])
	assert.Equal(t, []string{}, a.Location)
}

func TestParseUpdate(t *testing.T) {
	_, err := Plant.ParseUpdate(map[string]any{})
	assert.True(t, apperr.IsValidation(err))

	_, err = Plant.ParseUpdate(map[string]any{"logistic_preference": "train"})
	assert.True(t, apperr.IsValidation(err))

	_, err = Plant.ParseUpdate(map[string]any{"project_developer_id": "not-an-id"})
	assert.True(t, apperr.IsValidation(err))

	_, err = Storage.ParseUpdate(map[string]any{"route_preference": "coastal"})
	assert.True(t, apperr.IsValidation(err))

	patch, err := Pipeline.ParseUpdate(map[string]any{
		"route_preference": " coastal ",
		"report":           "feasible",
		"length_estimate":  42.5,
	})
	require.NoError(t, err)
	assert.Len(t, patch, 3)
	assert.Equal(t, "coastal", patch["route_preference"])
	assert.Equal(t, 42.5, patch["length_estimate"])
	assert.Equal(t, "feasible", patch["report"])
}

func TestKindColumns(t *testing.T) {
	cols := DistributionHub.Columns()
	assert.Equal(t, "id", cols[0])
	assert.Equal(t, []string{"service_radius", "proximity_preference", "land_requirement"}, cols[len(cols)-3:])
	assert.Len(t, All, 4)
}
