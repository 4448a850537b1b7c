package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/newsreader/headlines/internal/models"
	"github.com/newsreader/headlines/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewsService — то, что хендлерам нужно от сервисного слоя.
type NewsService interface {
	Refresh(ctx context.Context, q models.Query) ([]models.ArticleView, error)
	Current(ctx context.Context) (*service.Result, error)
	Article(ctx context.Context, index int) (models.ArticleView, error)
	Defaults() models.Query
}

// Handlers агрегирует зависимости.
type Handlers struct {
	News NewsService
}

func New(news NewsService) *Handlers {
	return &Handlers{News: news}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// statusErrorInvalidArgument — вспомогалка: локальная ошибка парсинга -> gRPC InvalidArgument.
func statusErrorInvalidArgument() error {
	return status.Error(codes.InvalidArgument, "invalid argument")
}
