// redact маскирует персональные данные перед записью в лог.
package redact

import "strings"

// Email оставляет первые две руны локальной части и домен:
// "anna.rossi@example.com" -> "an***@example.com".
// Короткая локальная часть скрывается целиком, строка без единственного '@' - тоже.
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	local, domain, _ := strings.Cut(s, "@")
	if r := []rune(local); len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Phone оставляет только две последние цифры номера.
func Phone(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) <= 2 {
		return "***"
	}

	return "***" + string(digits[len(digits)-2:])
}
