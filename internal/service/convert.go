package service

import (
	"strings"

	"github.com/newsreader/headlines/internal/models"
)

// Views готовит статьи к показу: отбрасывает удалённые, сохраняя порядок,
// и нумерует оставшиеся подряд с 0. renderer == nil — дата остаётся исходной.
func Views(articles []models.Article, renderer Renderer) []models.ArticleView {
	out := make([]models.ArticleView, 0, len(articles))

	for _, a := range articles {
		if a.Title == removedTitle {
			continue
		}

		date := a.PublishedAt
		if renderer != nil {
			date = renderer.Render(a.PublishedAt)
		}

		out = append(out, models.ArticleView{
			Index:       len(out),
			Title:       a.Title,
			Headline:    Headline(a.Title),
			Author:      a.Author,
			Description: a.Description,
			Content:     trimContent(a.Content),
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Date:        date,
			Readable:    a.Content != nil,
		})
	}

	return out
}

// Headline — заголовок без названия источника: текст до первого " - ".
func Headline(title string) string {
	head, _, _ := strings.Cut(title, " - ")
	return head
}

// TrimContent убирает хвост "[+N chars]": текст до первого "[".
func TrimContent(content string) string {
	head, _, _ := strings.Cut(content, "[")
	return head
}

func trimContent(content *string) *string {
	if content == nil {
		return nil
	}

	trimmed := TrimContent(*content)
	return &trimmed
}
