package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory — значение не соответствует ни одной категории.
var ErrUnknownCategory = errors.New("unknown category")

// Category — раздел top-headlines. Search — псевдокатегория свободного поиска.
type Category int

const (
	General Category = iota
	Business
	Entertainment
	Health
	Science
	Search
	Sports
	Technology
)

var categoryNames = [...]string{
	General:       "general",
	Business:      "business",
	Entertainment: "entertainment",
	Health:        "health",
	Science:       "science",
	Search:        "search",
	Sports:        "sports",
	Technology:    "technology",
}

// Categories возвращает все категории в порядке меню.
func Categories() []Category {
	return []Category{Business, Entertainment, General, Health, Science, Search, Sports, Technology}
}

// APIName — значение параметра category для newsapi.
func (c Category) APIName() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return ""
	}

	return categoryNames[c]
}

// DisplayName — подпись для показа. General показывается как "Top Headlines".
func (c Category) DisplayName() string {
	if c == General {
		return "Top Headlines"
	}

	name := c.APIName()
	if name == "" {
		return ""
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

func (c Category) String() string {
	return c.APIName()
}

// ParseCategory разбирает API-имя категории без учёта регистра.
// Пустая строка — General.
func ParseCategory(s string) (Category, error) {
	const op = "models/category/ParseCategory"

	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return General, nil
	}

	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}

	return General, fmt.Errorf("%s: %q: %w", op, s, ErrUnknownCategory)
}

// MarshalText кодирует категорию её API-именем (JSON/YAML/конфиг).
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.APIName()), nil
}

// UnmarshalText — обратное к MarshalText.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}

	*c = v
	return nil
}
