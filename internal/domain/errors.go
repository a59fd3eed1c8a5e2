package domain

import "errors"

// Validation errors of schedule entries and catalog fields
var (
	ErrInvalidWeekday      = errors.New("domain: invalid weekday")
	ErrMissingHours        = errors.New("domain: working day requires open and close time")
	ErrInvalidTime         = errors.New("domain: invalid time of day")
	ErrCloseNotAfterOpen   = errors.New("domain: close time must be after open time")
	ErrPartialBreak        = errors.New("domain: break requires both start and end")
	ErrBreakNotInsideHours = errors.New("domain: break must lie inside opening hours")
	ErrBreakEndBeforeStart = errors.New("domain: break end must be after break start")
	ErrInvalidDuration     = errors.New("domain: invalid service duration")
	ErrInvalidServiceName  = errors.New("domain: invalid service name")
	ErrInvalidPrice        = errors.New("domain: price must be positive")
)
