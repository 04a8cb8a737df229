package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/portfolio-tracker/internal/model"
)

// Common validation errors
var (
	ErrInvalidUUID  = fmt.Errorf("invalid UUID format")
	ErrInvalidRange = fmt.Errorf("invalid range")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateRange parses the range query parameter. An empty value selects month.
func ValidateRange(value string) (model.Range, error) {
	r, err := model.ParseRange(value)
	if err != nil {
		return "", &Error{Fields: map[string]string{
			"range": fmt.Sprintf("%s; expected day, week, month, year or max", err),
		}}
	}
	return r, nil
}
