package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsset_MarshalJSONFlattensAttributes(t *testing.T) {
	owner := uuid.New()
	a := Asset{
		Kind:               "plant",
		ProjectName:        "Kutch Electrolyser",
		ProjectDeveloperID: owner,
		Budget:             1200000,
		Capacity:           50,
		Attributes: map[string]any{
			"preferred_source":    "solar",
			"logistic_preference": "port",
		},
	}
	a.Prepare()

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, a.ID.String(), doc["_id"])
	assert.Equal(t, owner.String(), doc["project_developer_id"])
	assert.Equal(t, "solar", doc["preferred_source"])
	assert.Equal(t, "port", doc["logistic_preference"])
	assert.Equal(t, "", doc["report"])
	assert.Equal(t, []any{}, doc["location"])
	assert.NotContains(t, doc, "Kind")
}

func TestAsset_PrepareKeepsExistingValues(t *testing.T) {
	id := uuid.New()
	a := Asset{ID: id, Location: []string{"Gujarat"}}
	a.Prepare()

	assert.Equal(t, id, a.ID)
	assert.Equal(t, []string{"Gujarat"}, a.Location)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "dev@h2.example", NormalizeEmail("  Dev@H2.Example "))
}

func TestAccountsHideDigest(t *testing.T) {
	d := &ProjectDeveloper{Name: " Asha ", Email: "A@B.io"}
	d.SetPasswordDigest("argon2id$...")
	d.Prepare()

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "argon2id")
	assert.Equal(t, "Asha", d.Name)
	assert.Equal(t, "a@b.io", d.AccountEmail())
	assert.Equal(t, KindProjectDeveloper, d.AccountKind())
}
