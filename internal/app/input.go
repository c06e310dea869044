package app

import "strings"

// validPassword mirrors the registration policy: at least 7 characters
// and not containing the word "password".
func validPassword(password string) bool {
	return len(password) >= 7 && !strings.Contains(strings.ToLower(password), "password")
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}
