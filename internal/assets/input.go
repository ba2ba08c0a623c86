package assets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"h2grid/internal/apperr"
	"h2grid/internal/models"
	"h2grid/internal/validation"
)

var validate = validation.New()

// Rules for the columns every kind shares.
var (
	projectName = Field{Name: "project_name", Type: Text, Required: true, Rule: "required"}
	budget      = Field{Name: "budget", Type: Number, Required: true, Rule: "gt=0"}
	capacity    = Field{Name: "capacity", Type: Number, Required: true, Rule: "gt=0"}
)

const (
	developerIDField = "project_developer_id"
	locationField    = "location"
	reportField      = "report"
)

// ParseCreate validates a create payload and returns the asset to insert with
// defaults applied.
func (k *Kind) ParseCreate(in map[string]any) (*models.Asset, error) {
	if err := k.rejectUnknown(in); err != nil {
		return nil, err
	}

	a := &models.Asset{
		Kind:       k.Name,
		Location:   []string{},
		Attributes: make(map[string]any, len(k.Fields)),
	}

	name, err := requiredValue(in, projectName)
	if err != nil {
		return nil, err
	}
	a.ProjectName = name.(string)

	b, err := requiredValue(in, budget)
	if err != nil {
		return nil, err
	}
	a.Budget = b.(float64)

	c, err := requiredValue(in, capacity)
	if err != nil {
		return nil, err
	}
	a.Capacity = c.(float64)

	for _, f := range k.Fields {
		if !present(in, f.Name) {
			if f.Required {
				return nil, apperr.InvalidField(f.Name, "is required")
			}
			a.Attributes[f.Name] = f.Default
			continue
		}
		v, err := coerce(f, in[f.Name])
		if err != nil {
			return nil, err
		}
		a.Attributes[f.Name] = v
	}

	if !present(in, developerIDField) {
		return nil, apperr.InvalidField(developerIDField, "is required")
	}
	a.ProjectDeveloperID, err = parseDeveloperID(in[developerIDField])
	if err != nil {
		return nil, err
	}

	if present(in, locationField) {
		if a.Location, err = stringList(locationField, in[locationField]); err != nil {
			return nil, err
		}
	}
	if present(in, reportField) {
		report, ok := in[reportField].(string)
		if !ok {
			return nil, apperr.InvalidField(reportField, "must be a string")
		}
		a.Report = report
	}

	return a, nil
}

// ParseUpdate validates a partial update. Only supplied fields end up in the
// patch.
func (k *Kind) ParseUpdate(in map[string]any) (models.AssetPatch, error) {
	if len(in) == 0 {
		return nil, apperr.Validation("No update data provided")
	}
	if err := k.rejectUnknown(in); err != nil {
		return nil, err
	}

	patch := make(models.AssetPatch, len(in))
	for key, raw := range in {
		var (
			v   any
			err error
		)
		switch key {
		case developerIDField:
			v, err = parseDeveloperID(raw)
		case locationField:
			v, err = stringList(key, raw)
		case reportField:
			s, ok := raw.(string)
			if !ok {
				err = apperr.InvalidField(key, "must be a string")
			}
			v = s
		case projectName.Name:
			v, err = coerce(projectName, raw)
		case budget.Name:
			v, err = coerce(budget, raw)
		case capacity.Name:
			v, err = coerce(capacity, raw)
		default:
			f, _ := k.Field(key)
			v, err = coerce(f, raw)
		}
		if err != nil {
			return nil, err
		}
		patch[key] = v
	}
	return patch, nil
}

func (k *Kind) rejectUnknown(in map[string]any) error {
	var unknown []string
	for key := range in {
		if _, ok := k.Field(key); ok {
			continue
		}
		switch key {
		case projectName.Name, budget.Name, capacity.Name, developerIDField, locationField, reportField:
			continue
		}
		unknown = append(unknown, key)
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return apperr.InvalidField(unknown[0], fmt.Sprintf("is not a %s field", strings.ToLower(k.Label)))
}

func present(in map[string]any, key string) bool {
	v, ok := in[key]
	return ok && v != nil
}

func requiredValue(in map[string]any, f Field) (any, error) {
	if !present(in, f.Name) {
		return nil, apperr.InvalidField(f.Name, "is required")
	}
	return coerce(f, in[f.Name])
}

// coerce checks the JSON type of a value and then the field rule.
func coerce(f Field, raw any) (any, error) {
	var v any
	switch f.Type {
	case Number:
		n, ok := toFloat(raw)
		if !ok {
			return nil, apperr.InvalidField(f.Name, "must be a number")
		}
		v = n
	case Text:
		s, ok := raw.(string)
		if !ok {
			return nil, apperr.InvalidField(f.Name, "must be a string")
		}
		v = strings.TrimSpace(s)
	}

	if f.Rule != "" {
		if err := validate.Var(v, f.Rule); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return nil, apperr.InvalidField(f.Name, validation.Message(verrs[0].Tag(), verrs[0].Param()))
			}
			return nil, err
		}
	}
	return v, nil
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func parseDeveloperID(raw any) (uuid.UUID, error) {
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, apperr.InvalidField(developerIDField, "Invalid project_developer_id format")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.InvalidField(developerIDField, "Invalid project_developer_id format")
	}
	return id, nil
}

func stringList(field string, raw any) ([]string, error) {
	switch list := raw.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, apperr.InvalidField(field, "must be a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, apperr.InvalidField(field, "must be a list of strings")
}
