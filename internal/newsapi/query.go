// newsapi — клиент newsapi.org: построение запроса, исполнение, классификация ответа.
package newsapi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/newsreader/headlines/internal/models"
)

// DefaultBaseURL — корень API v2.
const DefaultBaseURL = "https://newsapi.org/v2"

const (
	EndpointTopHeadlines = "top-headlines"
	EndpointEverything   = "everything"
)

// Endpoint возвращает endpoint, в который уйдёт запрос q.
func Endpoint(q models.Query) string {
	if q.IsSearch() {
		return EndpointEverything
	}

	return EndpointTopHeadlines
}

// BuildURL строит полный URL запроса.
//
// Контракт:
//   - пустой SearchTerm: {base}/top-headlines?country=<code>[&category=<name>],
//     category опускается для General и Search;
//   - непустой SearchTerm: {base}/everything?q=<term>&sortBy=popularity,
//     Country и Category не выводятся;
//   - base должен разбираться как абсолютный URL, иначе KindURLParsing.
func BuildURL(baseURL string, q models.Query) (*url.URL, error) {
	const op = "newsapi/query/BuildURL"

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindURLParsing, Err: err}
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, &FetchError{Op: op, Kind: KindURLParsing, Err: fmt.Errorf("base url %q is not absolute", baseURL)}
	}

	endpoint := Endpoint(q)
	u := base.JoinPath(endpoint)

	// Порядок параметров фиксирован, поэтому строка собирается вручную, без url.Values.
	var b strings.Builder
	if endpoint == EndpointEverything {
		b.WriteString("q=")
		b.WriteString(url.QueryEscape(q.SearchTerm))
		b.WriteString("&sortBy=popularity")
	} else {
		b.WriteString("country=")
		b.WriteString(url.QueryEscape(string(q.Country)))
		if q.Category != models.General && q.Category != models.Search {
			b.WriteString("&category=")
			b.WriteString(q.Category.APIName())
		}
	}

	u.RawQuery = b.String()
	return u, nil
}
