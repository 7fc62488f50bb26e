package domain

import "time"

// RescheduleWindow окно, в течение которого можно отменить или перенести бронь
type RescheduleWindow struct {
	InitialBookingAt time.Time
	ExpiresAt        time.Time
	Allowed          bool
	HoursLeft        int
}

// ComputeWindow считает окно от первой брони пользователя:
// hoursLeft = max(0, floor((initial + window - now) / 1h)), allowed = now < initial + window
func ComputeWindow(initial, now time.Time, window time.Duration) RescheduleWindow {
	expires := initial.Add(window)
	left := expires.Sub(now)

	hours := 0
	if left > 0 {
		hours = int(left / time.Hour)
	}

	return RescheduleWindow{
		InitialBookingAt: initial,
		ExpiresAt:        expires,
		Allowed:          now.Before(expires),
		HoursLeft:        hours,
	}
}
