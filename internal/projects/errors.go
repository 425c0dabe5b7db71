package projects

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateReport = errors.New("report already exists for date")
	ErrAnalysisExists  = errors.New("analysis already recorded")
)
