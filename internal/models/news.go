// models содержит доменные сущности headlines.
// Эти типы используются клиентом newsapi, сервисным слоем и транспортом.
package models

// Article — статья в том виде, в каком её вернул newsapi.org.
//
// Особенности:
//   - Author/Content/Description опциональны (nil — поле отсутствует или null);
//   - PublishedAt — строка в UTC (ISO-8601), не разбирается при получении.
type Article struct {
	// Author — автор статьи.
	Author *string `json:"author" yaml:"author,omitempty"`
	// Content — усечённый текст статьи с хвостом вида "[+1234 chars]".
	Content *string `json:"content" yaml:"content,omitempty"`
	// Description — тизер.
	Description *string `json:"description" yaml:"description,omitempty"`
	// Title — заголовок, обычно "<заголовок> - <источник>".
	Title string `json:"title" yaml:"title"`
	// URL — ссылка на источник.
	URL string `json:"url" yaml:"url"`
	// PublishedAt — время публикации у источника.
	PublishedAt string `json:"publishedAt" yaml:"publishedAt"`
}

// Envelope — верхний уровень JSON-ответа newsapi.
// Articles имеет смысл только при Status == StatusOK;
// Code/Message заполняются сервисом при ошибке (best-effort).
type Envelope struct {
	Status   string    `json:"status"`
	Code     *string   `json:"code,omitempty"`
	Message  *string   `json:"message,omitempty"`
	Articles []Article `json:"articles"`
}

// StatusOK — значение Envelope.Status для успешного ответа.
const StatusOK = "ok"

// OK сообщает, успешен ли ответ.
func (e *Envelope) OK() bool {
	return e != nil && e.Status == StatusOK
}

// Query — выбор пользователя.
//
// Особенности:
//   - непустой SearchTerm имеет приоритет: Category и Country игнорируются;
//   - Category == Search при пустом SearchTerm ведёт себя как General.
type Query struct {
	Category   Category
	Country    Country
	SearchTerm string
}

// IsSearch сообщает, уходит ли запрос в endpoint "everything".
func (q Query) IsSearch() bool {
	return q.SearchTerm != ""
}

// ArticleView — проекция статьи для показа.
type ArticleView struct {
	// Index — позиция в удерживаемом списке (с 0).
	Index int `json:"index" yaml:"index"`
	// Title — заголовок как есть.
	Title string `json:"title" yaml:"title"`
	// Headline — заголовок до первого " - " (без названия источника).
	Headline string `json:"headline" yaml:"headline"`
	Author      *string `json:"author,omitempty" yaml:"author,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	// Content — текст до первого "[" (без хвоста "[+N chars]").
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
	URL     string  `json:"url" yaml:"url"`
	// PublishedAt — исходная метка.
	PublishedAt string `json:"published_at" yaml:"published_at"`
	// Date — метка в поясе наблюдателя или PublishedAt, если разобрать не удалось.
	Date string `json:"date" yaml:"date"`
	// Readable — у статьи есть текст.
	Readable bool `json:"readable" yaml:"readable"`
}
