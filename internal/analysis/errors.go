package analysis

import "errors"

var (
	// ErrInvalidSchedule is returned when a project's end date is not after
	// its start date. No partial analysis is attempted in that case.
	ErrInvalidSchedule = errors.New("project end date must be after start date")
)
