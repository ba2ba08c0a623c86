// Package assets describes the four asset kinds as data: one descriptor per
// kind holds its table, its kind-specific columns and their rules. Services and
// repositories are written once against a descriptor.
package assets

type FieldType int

const (
	Number FieldType = iota
	Text
)

// Field is one kind-specific column.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Rule is a validator tag checked whenever the field is supplied.
	Rule    string
	Default any
}

type Kind struct {
	Name  string
	Label string
	Table string
	// Fields are the kind-specific columns, in table order.
	Fields []Field
}

func (k *Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns lists every selectable column of the kind's table in scan order.
func (k *Kind) Columns() []string {
	cols := append([]string{}, commonColumns...)
	for _, f := range k.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

var commonColumns = []string{
	"id",
	"project_name",
	"project_developer_id",
	"budget",
	"capacity",
	"location",
	"report",
	"created_at",
	"updated_at",
}

var (
	Plant = &Kind{
		Name:  "plant",
		Label: "Plant",
		Table: "plants",
		Fields: []Field{
			{Name: "preferred_source", Type: Text, Required: true, Rule: "required"},
			{Name: "logistic_preference", Type: Text, Required: true, Rule: "required,oneof=port demand pipeline plant"},
		},
	}

	Storage = &Kind{
		Name:  "storage",
		Label: "Storage",
		Table: "storages",
		Fields: []Field{
			{Name: "technology", Type: Text, Default: ""},
			{Name: "proximity_preference", Type: Text, Required: true, Rule: "required,oneof=plant demand port"},
		},
	}

	Pipeline = &Kind{
		Name:  "pipeline",
		Label: "Pipeline",
		Table: "pipelines",
		Fields: []Field{
			{Name: "length_estimate", Type: Number, Required: true, Rule: "gt=0"},
			{Name: "route_preference", Type: Text, Required: true, Rule: "required"},
		},
	}

	DistributionHub = &Kind{
		Name:  "distribution_hub",
		Label: "Distribution hub",
		Table: "distribution_hubs",
		Fields: []Field{
			{Name: "service_radius", Type: Number, Required: true, Rule: "gt=0"},
			{Name: "proximity_preference", Type: Text, Required: true, Rule: "required"},
			{Name: "land_requirement", Type: Number, Required: true, Rule: "gt=0"},
		},
	}
)

// All is in the order the aggregate read reports kinds.
var All = []*Kind{DistributionHub, Pipeline, Plant, Storage}
