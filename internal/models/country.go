package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCountry — код страны не поддерживается newsapi.
var ErrUnknownCountry = errors.New("unknown country")

// Country — страна top-headlines: ISO 3166-1 alpha-2 код в нижнем регистре.
type Country string

// DefaultCountry — страна по умолчанию.
const DefaultCountry Country = "us"

// CountryInfo — код и английское название страны.
type CountryInfo struct {
	Code Country `json:"code" yaml:"code"`
	Name string  `json:"name" yaml:"name"`
}

var countries = []CountryInfo{
	{Code: "ar", Name: "Argentina"},
	{Code: "au", Name: "Australia"},
	{Code: "at", Name: "Austria"},
	{Code: "be", Name: "Belgium"},
	{Code: "br", Name: "Brazil"},
	{Code: "bg", Name: "Bulgaria"},
	{Code: "ca", Name: "Canada"},
	{Code: "cn", Name: "China"},
	{Code: "co", Name: "Colombia"},
	{Code: "cu", Name: "Cuba"},
	{Code: "cz", Name: "Czechia"},
	{Code: "eg", Name: "Egypt"},
	{Code: "fr", Name: "France"},
	{Code: "de", Name: "Germany"},
	{Code: "gr", Name: "Greece"},
	{Code: "hk", Name: "Hong Kong"},
	{Code: "hu", Name: "Hungary"},
	{Code: "in", Name: "India"},
	{Code: "id", Name: "Indonesia"},
	{Code: "ie", Name: "Ireland"},
	{Code: "il", Name: "Israel"},
	{Code: "it", Name: "Italy"},
	{Code: "jp", Name: "Japan"},
	{Code: "lv", Name: "Latvia"},
	{Code: "lt", Name: "Lithuania"},
	{Code: "my", Name: "Malaysia"},
	{Code: "mx", Name: "Mexico"},
	{Code: "ma", Name: "Morocco"},
	{Code: "nl", Name: "Netherlands"},
	{Code: "nz", Name: "New Zealand"},
	{Code: "ng", Name: "Nigeria"},
	{Code: "no", Name: "Norway"},
	{Code: "ph", Name: "Philippines"},
	{Code: "pl", Name: "Poland"},
	{Code: "pt", Name: "Portugal"},
	{Code: "ro", Name: "Romania"},
	{Code: "ru", Name: "Russia"},
	{Code: "sa", Name: "Saudi Arabia"},
	{Code: "rs", Name: "Serbia"},
	{Code: "sg", Name: "Singapore"},
	{Code: "sk", Name: "Slovakia"},
	{Code: "si", Name: "Slovenia"},
	{Code: "za", Name: "South Africa"},
	{Code: "kr", Name: "South Korea"},
	{Code: "se", Name: "Sweden"},
	{Code: "ch", Name: "Switzerland"},
	{Code: "tw", Name: "Taiwan"},
	{Code: "th", Name: "Thailand"},
	{Code: "tr", Name: "Turkey"},
	{Code: "ua", Name: "Ukraine"},
	{Code: "ae", Name: "United Arab Emirates"},
	{Code: "gb", Name: "United Kingdom"},
	{Code: "us", Name: "United States"},
	{Code: "ve", Name: "Venezuela"},
}

// Countries возвращает поддерживаемые страны в алфавитном порядке названий.
func Countries() []CountryInfo {
	out := make([]CountryInfo, len(countries))
	copy(out, countries)
	return out
}

// Name возвращает английское название страны или "" для неизвестного кода.
func (c Country) Name() string {
	for _, info := range countries {
		if info.Code == c {
			return info.Name
		}
	}

	return ""
}

// Valid сообщает, поддерживается ли код.
func (c Country) Valid() bool {
	return c.Name() != ""
}

// ParseCountry принимает код ("GB") или английское название ("united kingdom")
// без учёта регистра. Пустая строка — DefaultCountry.
func ParseCountry(s string) (Country, error) {
	const op = "models/country/ParseCountry"

	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCountry, nil
	}

	for _, info := range countries {
		if strings.EqualFold(string(info.Code), s) || strings.EqualFold(info.Name, s) {
			return info.Code, nil
		}
	}

	return "", fmt.Errorf("%s: %q: %w", op, s, ErrUnknownCountry)
}
