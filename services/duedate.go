package services

import (
	"time"

	"github.com/hagwonlab/homework-board/apperr"
)

const dueDateLayout = "2006-01-02"

// NormalizeDueDate validates and canonicalizes a due date. A nil or empty
// value normalizes to nil rather than failing; anything that is not a valid
// YYYY-MM-DD calendar date is a Validation error. The function is pure and is
// shared by the create and update paths.
func NormalizeDueDate(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dueDateLayout, *raw)
	if err != nil {
		return nil, apperr.Validation("due date must be in YYYY-MM-DD format")
	}
	canonical := parsed.Format(dueDateLayout)
	return &canonical, nil
}
