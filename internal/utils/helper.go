package utils

import (
	"strings"

	"github.com/google/uuid"

	"h2grid/internal/apperr"
)

// ParseID parses a path id, reporting a malformed one as a validation error
// named after what the id refers to.
func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperr.Validationf("Invalid %s ID format", what)
	}
	return id, nil
}
