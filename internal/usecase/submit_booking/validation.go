package submit_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// validateMobile 11 цифр, начинается с 09
func validateMobile(mobile string) error {
	if len(mobile) != domain.MobileLength || !strings.HasPrefix(mobile, domain.MobilePrefix) {
		return ErrInvalidMobile
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return ErrInvalidMobile
		}
	}
	return nil
}

// normalizeRequest обрезает пробелы и подставляет действие по умолчанию
func normalizeRequest(req *Request) {
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Package = strings.TrimSpace(req.Package)
	req.Addons = strings.TrimSpace(req.Addons)
	req.Makeup = strings.TrimSpace(req.Makeup)
	req.Remarks = strings.TrimSpace(req.Remarks)
	if req.Action == "" {
		req.Action = ActionBook
	}
}

// validateFields проверяет обязательные поля и возвращает разобранную дату
func validateFields(req *Request) (time.Time, error) {
	if req.Action != ActionBook && req.Action != ActionReschedule {
		return time.Time{}, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if !domain.ShootType(req.Type).IsValid() {
		return time.Time{}, fmt.Errorf("%w: type must be studio or campus", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	required := []struct {
		name  string
		value string
	}{
		{"time", req.Time},
		{"name", req.Name},
		{"package", req.Package},
		{"makeup", req.Makeup},
	}
	for _, f := range required {
		if f.value == "" {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}

	if utf8.RuneCountInString(req.Name) > domain.MaxNameLength {
		return time.Time{}, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Remarks) > domain.MaxRemarksLength {
		return time.Time{}, fmt.Errorf("%w: remarks are too long", ErrInvalidInput)
	}

	return date, nil
}
