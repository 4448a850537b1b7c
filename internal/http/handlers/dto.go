package handlers

import (
	"time"

	"github.com/newsreader/headlines/internal/models"
	"github.com/newsreader/headlines/internal/service"
)

// QueryDTO — запрос в ответе API.
type QueryDTO struct {
	Category string `json:"category"`
	Country  string `json:"country"`
	Search   string `json:"q,omitempty"`
}

// NewsListResponse — ответ /news и /news/current.
type NewsListResponse struct {
	Query     QueryDTO             `json:"query"`
	Total     int                  `json:"total"`
	Articles  []models.ArticleView `json:"articles"`
	FetchedAt *time.Time           `json:"fetched_at,omitempty"`
}

// CategoryDTO — элемент /categories.
type CategoryDTO struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

func queryToDTO(q models.Query) QueryDTO {
	return QueryDTO{
		Category: q.Category.APIName(),
		Country:  string(q.Country),
		Search:   q.SearchTerm,
	}
}

func listFromViews(q models.Query, views []models.ArticleView) NewsListResponse {
	if views == nil {
		views = []models.ArticleView{}
	}

	return NewsListResponse{Query: queryToDTO(q), Total: len(views), Articles: views}
}

func listFromResult(r *service.Result) NewsListResponse {
	resp := listFromViews(r.Query, r.Articles)
	at := r.FetchedAt.UTC()
	resp.FetchedAt = &at

	return resp
}
