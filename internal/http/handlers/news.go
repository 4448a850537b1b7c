package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/newsreader/headlines/internal/errors"
	"github.com/newsreader/headlines/internal/models"

	"github.com/go-chi/chi/v5"
)

// FetchNews — GET /news?category=&country=&q=.
// Пустые category/country берутся из значений по умолчанию сервиса.
func (h *Handlers) FetchNews(w http.ResponseWriter, r *http.Request) {
	q := h.News.Defaults()
	params := r.URL.Query()

	if v := params.Get("category"); v != "" {
		c, err := models.ParseCategory(v)
		if err != nil {
			apierrors.WriteError(w, r, statusErrorInvalidArgument())
			return
		}

		q.Category = c
	}

	if v := params.Get("country"); v != "" {
		c, err := models.ParseCountry(v)
		if err != nil {
			apierrors.WriteError(w, r, statusErrorInvalidArgument())
			return
		}

		q.Country = c
	}

	q.SearchTerm = params.Get("q")

	views, err := h.News.Refresh(r.Context(), q)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFromViews(q, views))
}

// CurrentNews — GET /news/current: удерживаемый результат последнего запроса.
func (h *Handlers) CurrentNews(w http.ResponseWriter, r *http.Request) {
	res, err := h.News.Current(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listFromResult(res))
}

// GetArticle — GET /news/current/{index}.
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	view, err := h.News.Article(r.Context(), index)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ListCategories — GET /categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, _ *http.Request) {
	all := models.Categories()
	out := make([]CategoryDTO, 0, len(all))
	for _, c := range all {
		out = append(out, CategoryDTO{Name: c.APIName(), Display: c.DisplayName()})
	}

	writeJSON(w, http.StatusOK, out)
}

// ListCountries — GET /countries.
func (h *Handlers) ListCountries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Countries())
}
