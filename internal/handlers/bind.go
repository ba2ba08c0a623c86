package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"h2grid/internal/assets"
	"h2grid/internal/validation"
)

// bindStrict decodes a JSON body rejecting unknown fields, then runs the
// binding tags. Errors come back as validation errors.
func bindStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation.Describe(err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return validation.Describe(err)
	}
	return nil
}

func label(kind *assets.Kind) string {
	return strings.ToLower(kind.Label)
}
