package domain

// Default configuration values
const (
	DefaultTimezone        = "America/Santiago"
	DefaultSlotStepMinutes = 60
)

// Business validation constants
const (
	MinSlotStepMinutes        = 5
	MaxSlotStepMinutes        = 240
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 100
	MaxServiceDescription     = 1000
	MaxClientNameLength       = 100
	MaxClientEmailLength      = 255
	DaysPerWeek               = 7
)

// Time format constants
const (
	TimeFormat          = "15:04"               // HH:MM
	DateFormat          = "2006-01-02"          // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04:05" // без зоны, читается в зоне бизнеса
	LocalDateTimeShort  = "2006-01-02T15:04"
)
