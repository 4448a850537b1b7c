package newsapi

import (
	"strings"
	"testing"

	"github.com/newsreader/headlines/internal/models"

	"github.com/stretchr/testify/require"
)

func TestBuildURL_TopHeadlines(t *testing.T) {
	t.Parallel()

	for _, c := range models.Categories() {
		if c == models.Search {
			continue
		}

		u, err := BuildURL(DefaultBaseURL, models.Query{Category: c, Country: "gb"})
		require.NoError(t, err)

		require.True(t, strings.HasSuffix(u.Path, "/top-headlines"), u.Path)
		require.Contains(t, u.RawQuery, "country=gb")

		if c == models.General {
			require.Equal(t, "country=gb", u.RawQuery)
		} else {
			require.Equal(t, "country=gb&category="+c.APIName(), u.RawQuery)
		}
	}
}

func TestBuildURL_FullString(t *testing.T) {
	t.Parallel()

	u, err := BuildURL(DefaultBaseURL, models.Query{Category: models.Technology, Country: "us"})
	require.NoError(t, err)
	require.Equal(t, "https://newsapi.org/v2/top-headlines?country=us&category=technology", u.String())

	u, err = BuildURL(DefaultBaseURL, models.Query{SearchTerm: "golang"})
	require.NoError(t, err)
	require.Equal(t, "https://newsapi.org/v2/everything?q=golang&sortBy=popularity", u.String())
}

func TestBuildURL_SearchIgnoresCategoryAndCountry(t *testing.T) {
	t.Parallel()

	for _, c := range models.Categories() {
		u, err := BuildURL(DefaultBaseURL, models.Query{Category: c, Country: "de", SearchTerm: "rust & go"})
		require.NoError(t, err)

		require.True(t, strings.HasSuffix(u.Path, "/everything"), u.Path)
		require.Equal(t, "q=rust+%26+go&sortBy=popularity", u.RawQuery)
		require.NotContains(t, u.RawQuery, "country")
		require.NotContains(t, u.RawQuery, "category")
		require.Equal(t, "rust & go", u.Query().Get("q"))
	}
}

func TestBuildURL_SearchCategoryWithoutTerm(t *testing.T) {
	t.Parallel()

	u, err := BuildURL(DefaultBaseURL, models.Query{Category: models.Search, Country: "fr"})
	require.NoError(t, err)
	require.Equal(t, "https://newsapi.org/v2/top-headlines?country=fr", u.String())
}

func TestBuildURL_CustomBase(t *testing.T) {
	t.Parallel()

	u, err := BuildURL("http://127.0.0.1:8080/api/v2/", models.Query{Country: "us"})
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080/api/v2/top-headlines?country=us", u.String())
}

func TestBuildURL_BadBase(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"::not a url", "newsapi.org/v2", "", "/v2"} {
		_, err := BuildURL(base, models.Query{Country: "us"})
		require.ErrorIs(t, err, ErrURLParsing, "base %q", base)
		require.True(t, IsKind(err, KindURLParsing))
	}
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, EndpointTopHeadlines, Endpoint(models.Query{Category: models.Search}))
	require.Equal(t, EndpointEverything, Endpoint(models.Query{SearchTerm: "x"}))
}
