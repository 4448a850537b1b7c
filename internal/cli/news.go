package cli

import (
	"errors"
	"strings"

	"github.com/newsreader/headlines/internal/models"
	"github.com/newsreader/headlines/internal/newsapi"

	"github.com/spf13/cobra"
)

func topCmd(flags *rootFlags) *cobra.Command {
	var country string
	var category string

	c := &cobra.Command{
		Use:   "top",
		Short: "Show top headlines for a country and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			q := a.news.Defaults()

			if country != "" {
				if q.Country, err = models.ParseCountry(country); err != nil {
					return err
				}
			}

			if category != "" {
				if q.Category, err = models.ParseCategory(category); err != nil {
					return err
				}
			}

			return runQuery(cmd, a, flags.format, q)
		},
	}

	c.Flags().StringVar(&country, "country", "", "Country code or name (default from config)")
	c.Flags().StringVar(&category, "category", "", "Category: business|entertainment|general|health|science|sports|technology")
	return c
}

func searchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search all articles by popularity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))
			if term == "" {
				return errors.New("search term is empty")
			}

			a, err := newApp(flags.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			q := models.Query{Category: models.Search, Country: a.news.Defaults().Country, SearchTerm: term}
			return runQuery(cmd, a, flags.format, q)
		},
	}
}

func runQuery(cmd *cobra.Command, a *app, format string, q models.Query) error {
	views, err := a.news.Refresh(a.withLogger(cmd.Context()), q)
	if err != nil {
		return userError(err)
	}

	return printViews(cmd.OutOrStdout(), format, q, views)
}

// fetchFailure показывает пользователю текст ошибки newsapi,
// сохраняя исходную ошибку в цепочке.
type fetchFailure struct {
	msg string
	err error
}

func (f *fetchFailure) Error() string { return f.msg }
func (f *fetchFailure) Unwrap() error { return f.err }

func userError(err error) error {
	var fe *newsapi.FetchError
	if errors.As(err, &fe) {
		return &fetchFailure{msg: fe.UserMessage(), err: err}
	}

	return err
}
