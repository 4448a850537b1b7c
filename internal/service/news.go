package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/newsreader/headlines/internal/models"
	"github.com/newsreader/headlines/pkg/log"
)

// removedTitle — заголовок, которым newsapi помечает удалённые статьи.
const removedTitle = "[Removed]"

// Refresh выполняет запрос q и делает его итог текущим результатом.
//
// Правила нормализации:
// - пустая Country -> страна по умолчанию;
// - SearchTerm обрезается по пробелам;
// - неизвестная страна без поиска -> ErrInvalidArgument (сеть не затрагивается).
//
// Ошибки:
// - ErrInvalidArgument — некорректный запрос;
// - ошибки Fetcher (*newsapi.FetchError) — обёрнуты и тоже удерживаются как результат.
func (s *Service) Refresh(ctx context.Context, q models.Query) ([]models.ArticleView, error) {
	const op = "service/news/Refresh"

	q.SearchTerm = strings.TrimSpace(q.SearchTerm)
	if q.Country == "" {
		q.Country = s.defaults.Country
	}

	lg := log.From(ctx)
	lg.Info("refresh_request",
		slog.String("op", op),
		slog.String("category", q.Category.APIName()),
		slog.String("country", string(q.Country)),
		slog.Bool("search", q.IsSearch()),
	)

	if !q.IsSearch() && !q.Country.Valid() {
		lg.Warn("refresh_invalid_country",
			slog.String("op", op),
			slog.String("country", string(q.Country)),
		)

		return nil, fmt.Errorf("%s: country %q: %w", op, q.Country, ErrInvalidArgument)
	}

	seq := s.begin()

	// Номер запроса попадает во все записи ниже, включая логи клиента newsapi.
	ctx = log.With(ctx, slog.Uint64("refresh_seq", seq))
	lg = log.From(ctx)

	articles, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		s.hold(seq, &Result{Query: q, Err: err, FetchedAt: s.now()})

		lg.Error("refresh_fetch_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, err
	}

	views := Views(articles, s.renderer)
	s.hold(seq, &Result{Query: q, Articles: views, FetchedAt: s.now()})

	lg.Info("refresh_ok",
		slog.String("op", op),
		slog.Int("received", len(articles)),
		slog.Int("items", len(views)),
	)

	return views, nil
}

// Current возвращает удерживаемый результат.
// Если последний запрос завершился ошибкой, возвращаются и результат, и его ошибка.
//
// Ошибки:
// - ErrNoResult — запросов ещё не было.
func (s *Service) Current(ctx context.Context) (*Result, error) {
	const op = "service/news/Current"

	s.mu.RLock()
	held := s.held
	s.mu.RUnlock()

	if held == nil {
		log.From(ctx).Debug("current_no_result", slog.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, ErrNoResult)
	}

	return held, held.Err
}

// Article возвращает статью удерживаемого списка по индексу.
//
// Ошибки:
// - ErrNoResult — запросов ещё не было;
// - ошибка последнего запроса, если он провалился;
// - ErrNotFound — индекс вне списка.
func (s *Service) Article(ctx context.Context, index int) (models.ArticleView, error) {
	const op = "service/news/Article"

	held, err := s.Current(ctx)
	if err != nil {
		return models.ArticleView{}, err
	}

	if index < 0 || index >= len(held.Articles) {
		log.From(ctx).Warn("article_not_found",
			slog.String("op", op),
			slog.Int("index", index),
			slog.Int("items", len(held.Articles)),
		)

		return models.ArticleView{}, fmt.Errorf("%s: index %d: %w", op, index, ErrNotFound)
	}

	return held.Articles[index], nil
}

func (s *Service) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return s.seq
}

// hold сохраняет результат, если более поздний запрос ещё не успел записать свой.
func (s *Service) hold(seq uint64, r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.heldSeq {
		return
	}

	s.heldSeq = seq
	s.held = r
}
