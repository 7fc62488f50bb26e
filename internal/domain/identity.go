package domain

import "strings"

// Identity пользователь, подтвержденный identity provider
type Identity struct {
	ID    string
	Email string
}

// HasEmailSuffix проверяет домен подтвержденного email (без учета регистра)
func (i Identity) HasEmailSuffix(suffix string) bool {
	if suffix == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(i.Email)), strings.ToLower(suffix))
}
