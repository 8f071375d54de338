package handlers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"flavorgraph/logger"
	"flavorgraph/recommend"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type FormDefaults struct {
	MaxRecipes      int
	MaxRecipesLimit int
}

func render(pages *template.Template, w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("Failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func Index(pages *template.Template, defaults FormDefaults, w http.ResponseWriter, r *http.Request) {
	render(pages, w, "index.html", defaults)
}

// formInt reads an optional integer form field.
func formInt(r *http.Request, field string) (*int, error) {
	raw := strings.TrimSpace(r.PostFormValue(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrapf(recommend.ErrInvalidRequest, "%s must be an integer", field)
	}
	return &v, nil
}

// Results handles the form posted from the index page.
func Results(svc *recommend.Service, pages *template.Template, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	req := recommend.Request{
		Ingredients: r.PostFormValue("ingredients"),
		SortBy:      r.PostFormValue("sort_by"),
	}
	var err error
	if req.MinMatch, err = formInt(r, "min_match"); err != nil {
		writeError(w, r, "Invalid form", err)
		return
	}
	if req.MaxRecipes, err = formInt(r, "max_recipes"); err != nil {
		writeError(w, r, "Invalid form", err)
		return
	}

	res, err := svc.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, r, "Failed to suggest recipes", err)
		return
	}
	render(pages, w, "results.html", res)
}

// ingredientList accepts either one free text string or a list of strings.
// List items are single ingredients and are not split on separators.
type ingredientList struct {
	text  string
	items []string
}

func (l *ingredientList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		l.text = s
		return nil
	}
	items := []string{}
	if err := json.Unmarshal(b, &items); err != nil {
		return errors.New("ingredients must be a string or a list of strings")
	}
	l.items = items
	return nil
}

// flexInt accepts 3 as well as "3".
type flexInt struct {
	v *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		f.v = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("expected an integer")
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.Errorf("expected an integer, got %q", s)
	}
	f.v = &n
	return nil
}

type suggestRequest struct {
	Ingredients ingredientList `json:"ingredients"`
	MinMatch    flexInt        `json:"min_match"`
	SortBy      string         `json:"sort_by"`
	MaxRecipes  flexInt        `json:"max_recipes"`
}

func APISuggest(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	var body suggestRequest
	if err := decodeBody(w, r, &body, false); err != nil {
		writeAPIError(w, r, "Invalid request payload", err)
		return
	}

	res, err := svc.Recommend(r.Context(), recommend.Request{
		Ingredients: body.Ingredients.text,
		Items:       body.Ingredients.items,
		MinMatch:    body.MinMatch.v,
		SortBy:      body.SortBy,
		MaxRecipes:  body.MaxRecipes.v,
	})
	if err != nil {
		writeAPIError(w, r, "Failed to suggest recipes", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
