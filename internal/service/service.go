// service содержит бизнес-логику headlines: запрос статей, удержание
// последнего результата и подготовку статей к показу.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/newsreader/headlines/internal/models"
)

var (
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: codes.InvalidArgument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — статьи с таким индексом нет в удерживаемом списке.
	// Транспорт: codes.NotFound.
	ErrNotFound = errors.New("not found")
	// ErrNoResult — ни одного запроса ещё не выполнялось.
	// Транспорт: codes.FailedPrecondition.
	ErrNoResult = errors.New("no result yet")
)

// Fetcher — источник статей (реализация — newsapi.Client).
type Fetcher interface {
	Fetch(ctx context.Context, q models.Query) ([]models.Article, error)
}

// Renderer переводит метку публикации в строку для показа (реализация — timestamp.Observer).
type Renderer interface {
	Render(iso string) string
}

// Result — удерживаемый итог последнего запроса: либо статьи, либо ошибка.
type Result struct {
	Query     models.Query
	Articles  []models.ArticleView
	Err       error
	FetchedAt time.Time
}

// Service — описывает бизнес-логику headlines.
//
// Конкурентность: Refresh может вызываться параллельно; удерживается результат
// самого позднего по времени начала запроса (last-write-wins по очерёдности запросов).
type Service struct {
	fetcher  Fetcher
	renderer Renderer
	defaults models.Query
	now      func() time.Time

	mu      sync.RWMutex
	seq     uint64
	heldSeq uint64
	held    *Result
}

// New создает новый экземпляр Service.
// defaults подставляются в запрос, где пользователь не указал страну.
func New(fetcher Fetcher, renderer Renderer, defaults models.Query) *Service {
	if defaults.Country == "" {
		defaults.Country = models.DefaultCountry
	}

	return &Service{
		fetcher:  fetcher,
		renderer: renderer,
		defaults: defaults,
		now:      time.Now,
	}
}

// Defaults возвращает запрос по умолчанию (стартовая выборка).
func (s *Service) Defaults() models.Query {
	return s.defaults
}
