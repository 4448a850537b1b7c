package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/newsreader/headlines/internal/models"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// titleWidth — ширина заголовка в pretty-выводе (в колонках терминала).
const titleWidth = 76

type listing struct {
	Category string               `json:"category" yaml:"category"`
	Country  string               `json:"country,omitempty" yaml:"country,omitempty"`
	Search   string               `json:"q,omitempty" yaml:"q,omitempty"`
	Total    int                  `json:"total" yaml:"total"`
	Articles []models.ArticleView `json:"articles" yaml:"articles"`
}

type categoryRow struct {
	Name    string `json:"name" yaml:"name"`
	Display string `json:"display" yaml:"display"`
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", format)
	}
}

func printViews(w io.Writer, format string, q models.Query, views []models.ArticleView) error {
	if views == nil {
		views = []models.ArticleView{}
	}

	if format != formatPretty && format != "" {
		l := listing{Category: q.Category.APIName(), Search: q.SearchTerm, Total: len(views), Articles: views}
		if !q.IsSearch() {
			l.Country = string(q.Country)
		}
		return encode(w, format, l)
	}

	fmt.Fprintf(w, "%s (%d)\n\n", heading(q), len(views))

	if len(views) == 0 {
		fmt.Fprintln(w, "No articles.")
		return nil
	}

	for _, v := range views {
		fmt.Fprintf(w, "%2d. %s\n", v.Index+1, runewidth.Truncate(v.Headline, titleWidth, "…"))

		meta := []string{v.Date}
		if v.Author != nil && *v.Author != "" {
			meta = append(meta, runewidth.Truncate(*v.Author, titleWidth/2, "…"))
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(meta, " · "))
		fmt.Fprintf(w, "    %s\n\n", v.URL)
	}

	return nil
}

func heading(q models.Query) string {
	if q.IsSearch() {
		return fmt.Sprintf("Search: %q", q.SearchTerm)
	}

	return q.Category.DisplayName() + " · " + q.Country.Name()
}

func printCategories(w io.Writer, format string, cats []models.Category) error {
	rows := make([]categoryRow, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, categoryRow{Name: c.APIName(), Display: c.DisplayName()})
	}

	if format != formatPretty && format != "" {
		return encode(w, format, rows)
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", runewidth.FillRight(r.Name, 15), r.Display)
	}

	return nil
}

func printCountries(w io.Writer, format string, countries []models.CountryInfo) error {
	if format != formatPretty && format != "" {
		return encode(w, format, countries)
	}

	for _, c := range countries {
		fmt.Fprintf(w, "%s  %s\n", c.Code, c.Name)
	}

	return nil
}
