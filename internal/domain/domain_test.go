package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindow(t *testing.T) {
	initial := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		allowed   bool
		hoursLeft int
	}{
		{"right after booking", initial, true, 24},
		{"half an hour later", initial.Add(30 * time.Minute), true, 23},
		{"one minute before expiry", initial.Add(24*time.Hour - time.Minute), true, 0},
		{"exactly at expiry", initial.Add(24 * time.Hour), false, 0},
		{"long after expiry", initial.Add(72 * time.Hour), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(initial, tt.now, DefaultRescheduleWindow)
			assert.Equal(t, tt.allowed, w.Allowed)
			assert.Equal(t, tt.hoursLeft, w.HoursLeft)
			assert.Equal(t, initial.Add(24*time.Hour), w.ExpiresAt)
		})
	}
}

func TestIdentity_HasEmailSuffix(t *testing.T) {
	assert.True(t, Identity{Email: "juan@up.edu.ph"}.HasEmailSuffix("@up.edu.ph"))
	assert.True(t, Identity{Email: "Juan@UP.edu.ph"}.HasEmailSuffix("@up.edu.ph"))
	assert.False(t, Identity{Email: "juan@gmail.com"}.HasEmailSuffix("@up.edu.ph"))
	assert.False(t, Identity{Email: "juan@up.edu.ph.evil.com"}.HasEmailSuffix("@up.edu.ph"))
}

func TestSlotUsage_RemainingClamped(t *testing.T) {
	assert.Equal(t, 2, SlotUsage{Capacity: 3, Confirmed: 1}.Remaining())
	assert.Equal(t, 0, SlotUsage{Capacity: 1, Confirmed: 3}.Remaining())
}

func TestSortTimeAvailability(t *testing.T) {
	items := []TimeAvailability{
		{Time: "1:00 PM"},
		{Time: "09:30"},
		{Time: "10:00 AM"},
		{Time: "whenever"},
		{Time: "9:00 AM"},
	}

	SortTimeAvailability(items)

	var got []string
	for _, it := range items {
		got = append(got, it.Time)
	}
	assert.Equal(t, []string{"9:00 AM", "09:30", "10:00 AM", "1:00 PM", "whenever"}, got)
}

func TestBooking_SyncPayload(t *testing.T) {
	b := &Booking{
		ID:      "b1",
		Type:    ShootTypeStudio,
		Date:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Time:    "09:00",
		Package: "Package A",
		Addons:  "Extra prints",
		Status:  StatusCancelled,
	}

	p := b.SyncPayload()
	assert.Equal(t, "2026-03-12", p.Date)
	assert.Equal(t, "Package A", p.PackageName)
	assert.Equal(t, "Extra prints", p.AddOns)
	assert.Equal(t, "Cancelled", p.Status)
}
