package domain

import "time"

// Значения по умолчанию
const (
	DefaultRescheduleWindow   = 24 * time.Hour
	DefaultAllowedEmailSuffix = "@up.edu.ph"
	DefaultSyncMaxAttempts    = 3
	DefaultSyncBackoff        = 500 * time.Millisecond
)

// Ограничения входных данных
const (
	MobileLength     = 11
	MobilePrefix     = "09"
	MaxNameLength    = 200
	MaxRemarksLength = 1000
)

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
