package chartboard

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks operations referencing a missing dashboard,
	// datasource, or widget id.
	ErrNotFound = errors.New("chartboard: not found")
	// ErrDuplicateID marks inserts that collide with an existing id.
	ErrDuplicateID = errors.New("chartboard: duplicate id")
	// ErrLastDashboard blocks deleting the only remaining dashboard.
	ErrLastDashboard = errors.New("chartboard: cannot delete the last dashboard")
	// ErrUnsupportedChartType marks chart types outside the closed set.
	ErrUnsupportedChartType = errors.New("chartboard: unsupported chart type")
	// ErrNotPinnable marks chat messages without renderable chart data.
	ErrNotPinnable = errors.New("chartboard: message has no chart data to pin")
	// ErrWidgetLocked marks layout updates that move or resize a locked entry.
	ErrWidgetLocked = errors.New("chartboard: widget is locked")
)

// ValidationError reports an unmet chart field-selection constraint. The
// widget is not created and no state changes.
type ValidationError struct {
	Type       ChartType
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chartboard: invalid %s selection: %s", e.Type, e.Constraint)
}

func newValidationError(t ChartType, format string, args ...any) error {
	return &ValidationError{Type: t, Constraint: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a field-selection validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
