package newsapi

import (
	"errors"
	"fmt"

	"github.com/newsreader/headlines/internal/models"
)

// Sentinel-ошибки по видам сбоя; сопоставляются через errors.Is с *FetchError.
var (
	ErrURLParsing           = errors.New("url parsing failed")
	ErrRequestFailed        = errors.New("request failed")
	ErrFailedResponseToJSON = errors.New("failed response to json")
	ErrBadRequest           = errors.New("bad request")
)

// Kind — вид сбоя конвейера запроса.
type Kind string

const (
	KindURLParsing           Kind = "url_parsing"
	KindRequestFailed        Kind = "request_failed"
	KindFailedResponseToJSON Kind = "failed_response_to_json"
	KindBadRequest           Kind = "bad_request"
)

// UnknownErrorMessage — сообщение BadRequest, когда сервис не прислал code и message.
const UnknownErrorMessage = "Unknown error"

var kindSentinels = map[Kind]error{
	KindURLParsing:           ErrURLParsing,
	KindRequestFailed:        ErrRequestFailed,
	KindFailedResponseToJSON: ErrFailedResponseToJSON,
	KindBadRequest:           ErrBadRequest,
}

// FetchError — единая ошибка конвейера build -> call -> classify.
//
// Особенности:
//   - Message заполняется только для KindBadRequest ("code - message" или "Unknown error");
//   - Code — сырой код newsapi (apiKeyInvalid, rateLimited, ...), если он был;
//   - Err — исходная причина (транспорт, декодер, url.Parse).
type FetchError struct {
	Op      string
	Kind    Kind
	Message string
	Code    string
	Err     error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}

	return base
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// Is сопоставляет ошибку с sentinel её вида.
func (e *FetchError) Is(target error) bool {
	if e == nil {
		return false
	}

	return kindSentinels[e.Kind] == target
}

// UserMessage — текст для показа пользователю.
func (e *FetchError) UserMessage() string {
	if e == nil {
		return ""
	}

	switch e.Kind {
	case KindRequestFailed:
		return "Unable to fetch articles at this time.\n\nCheck your internet connection."
	case KindFailedResponseToJSON:
		return "Oops! Unable to read the news! Try again soon."
	case KindURLParsing:
		return "Url parsing failed. Please contact creator."
	case KindBadRequest:
		return "Not a Prometheus error.\nwww.newsapi.org error: " + e.Message
	default:
		return e.Error()
	}
}

// IsKind сообщает, является ли err (или что-то в его цепочке) *FetchError вида kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}

	return false
}

// Classify переводит неуспешный конверт в BadRequest.
// Оба поля code и message — "code - message", иначе "Unknown error".
func Classify(env *models.Envelope) *FetchError {
	const op = "newsapi/errors/Classify"

	fe := &FetchError{Op: op, Kind: KindBadRequest, Message: UnknownErrorMessage}
	if env == nil {
		return fe
	}

	if env.Code != nil {
		fe.Code = *env.Code
	}
	if env.Code != nil && env.Message != nil {
		fe.Message = *env.Code + " - " + *env.Message
	}

	return fe
}
