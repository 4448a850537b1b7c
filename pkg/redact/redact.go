// redact маскирует секреты перед записью в логи.
package redact

import "unicode/utf8"

// APIKey оставляет первые четыре символа ключа и заменяет остальное на "***".
//
// Правила:
//   - пустая строка -> "";
//   - ключ короче 8 рун маскируется целиком ("***"), иначе префикс выдаёт слишком много;
//   - длина исходного ключа в результат не попадает.
func APIKey(s string) string {
	if s == "" {
		return ""
	}

	if utf8.RuneCountInString(s) < 8 {
		return "***"
	}

	r := []rune(s)
	return string(r[:4]) + "***"
}
