package domain

import (
	"sort"
	"strings"
	"time"
)

// SlotKey слот фотосессии: тип, дата и время
type SlotKey struct {
	Type ShootType
	Date time.Time
	Time string
}

// SlotConfig вместимость слота, задается администраторами вне сервиса
type SlotConfig struct {
	SlotKey
	Capacity int
}

// SlotUsage вместимость слота и число подтвержденных броней в нем
type SlotUsage struct {
	Date      time.Time
	Time      string
	Capacity  int
	Confirmed int
}

// Remaining свободные места, не меньше нуля
func (u SlotUsage) Remaining() int {
	if r := u.Capacity - u.Confirmed; r > 0 {
		return r
	}
	return 0
}

// DateAvailability свободные места за день по всем слотам
type DateAvailability struct {
	Date      time.Time
	Remaining int
}

// TimeAvailability свободные места в конкретном слоте
type TimeAvailability struct {
	Time      string
	Remaining int
}

var timeLabelLayouts = []string{TimeFormat, "3:04 PM", "03:04 PM", "3:04PM", "3 PM"}

// ParseTimeLabel разбирает метку времени слота ("09:00", "9:00 AM")
func ParseTimeLabel(label string) (time.Time, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	for _, layout := range timeLabelLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortTimeAvailability сортирует слоты по времени суток.
// Нераспознанные метки идут в конце в лексикографическом порядке.
func SortTimeAvailability(items []TimeAvailability) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, okI := ParseTimeLabel(items[i].Time)
		tj, okJ := ParseTimeLabel(items[j].Time)
		switch {
		case okI && okJ:
			if ti.Equal(tj) {
				return items[i].Time < items[j].Time
			}
			return ti.Before(tj)
		case okI:
			return true
		case okJ:
			return false
		default:
			return items[i].Time < items[j].Time
		}
	})
}
