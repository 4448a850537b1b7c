// errors стандартизирует ответы об ошибках HTTP-слоя headlines.
// На вход он принимает ошибку сервисного слоя или клиента newsapi
// (либо уже готовый gRPC-статус), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Доменные ошибки сперва переводятся в gRPC codes (ToStatus), затем
// codes -> HTTP по единой таблице (baseFromGRPC).
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/newsreader/headlines/internal/newsapi"
	"github.com/newsreader/headlines/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для клиентов API.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// remoteAuthCodes — коды newsapi, означающие проблему с ключом.
var remoteAuthCodes = map[string]bool{
	"apiKeyMissing":   true,
	"apiKeyInvalid":   true,
	"apiKeyDisabled":  true,
	"apiKeyExhausted": true,
}

// ToStatus переводит доменную ошибку в gRPC-статус.
//
// Таблица:
//   - context.Canceled -> Canceled, context.DeadlineExceeded -> DeadlineExceeded;
//   - service.ErrInvalidArgument -> InvalidArgument, ErrNotFound -> NotFound,
//     ErrNoResult -> FailedPrecondition;
//   - newsapi: url_parsing -> Internal, request_failed -> Unavailable,
//     failed_response_to_json -> DataLoss, bad_request -> FailedPrecondition
//     (ключ: Unauthenticated, rateLimited: ResourceExhausted);
//   - уже gRPC-статус — как есть; прочее -> Internal.
func ToStatus(err error) *status.Status {
	if st, ok := status.FromError(err); ok {
		return st
	}

	switch {
	case stderrors.Is(err, context.Canceled):
		return status.New(codes.Canceled, "canceled")
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, "deadline exceeded")
	case stderrors.Is(err, service.ErrInvalidArgument):
		return status.New(codes.InvalidArgument, "invalid argument")
	case stderrors.Is(err, service.ErrNotFound):
		return status.New(codes.NotFound, "not found")
	case stderrors.Is(err, service.ErrNoResult):
		return status.New(codes.FailedPrecondition, "no news fetched yet")
	}

	var fe *newsapi.FetchError
	if !stderrors.As(err, &fe) {
		return status.New(codes.Internal, "internal error")
	}

	switch fe.Kind {
	case newsapi.KindRequestFailed:
		return status.New(codes.Unavailable, fe.UserMessage())
	case newsapi.KindFailedResponseToJSON:
		return status.New(codes.DataLoss, fe.UserMessage())
	case newsapi.KindBadRequest:
		switch {
		case remoteAuthCodes[fe.Code]:
			return status.New(codes.Unauthenticated, fe.Message)
		case fe.Code == "rateLimited":
			return status.New(codes.ResourceExhausted, fe.Message)
		default:
			return status.New(codes.FailedPrecondition, fe.Message)
		}
	default:
		return status.New(codes.Internal, "internal error")
	}
}

// ToHTTP конвертирует входную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - иначе ToStatus -> baseFromGRPC; для bad_request newsapi message —
//     текст классификатора ("code - message" или "Unknown error").
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	httpStatus, code, msg := baseFromGRPC(ToStatus(err).Code())

	var fe *newsapi.FetchError
	if stderrors.As(err, &fe) && fe.Kind == newsapi.KindBadRequest {
		msg = fe.Message
	}

	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromGRPC — базовый маппинг gRPC -> HTTP/код/сообщение.
//   - InvalidArgument (битые параметры запроса) -> 400
//   - NotFound (индекс статьи) -> 404
//   - FailedPrecondition (нет результата; newsapi отклонил запрос) -> 412
//   - Unauthenticated (ключ newsapi) -> 401
//   - ResourceExhausted (rateLimited) -> 429
//   - Canceled -> 499 (клиент закрыл соединение)
//   - DeadlineExceeded -> 504
//   - Unavailable (newsapi недоступен) -> 503
//   - DataLoss (ответ newsapi не разобран) -> 502
//   - прочее -> 500/internal
func baseFromGRPC(c codes.Code) (int, string, string) {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case codes.NotFound:
		return http.StatusNotFound, "not_found", "not found"
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed, "failed_precondition", "failed precondition"
	case codes.Unauthenticated:
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests, "resource_exhausted", "resource exhausted"
	case codes.Canceled:
		return StatusClientClosedRequest, "canceled", "canceled"
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "unavailable", "news service unavailable"
	case codes.DataLoss:
		return http.StatusBadGateway, "bad_gateway", "unreadable upstream response"
	case codes.Unimplemented:
		return http.StatusNotImplemented, "unimplemented", "unimplemented"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
