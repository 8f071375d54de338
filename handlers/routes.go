package handlers

import (
	"html/template"
	"net/http"

	"flavorgraph/recommend"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type Deps struct {
	Service        *recommend.Service
	Pages          *template.Template
	Form           FormDefaults
	Image          ImageOptions
	AllowedOrigins []string
}

// NewRouter wires every route and wraps them with CORS.
func NewRouter(d Deps) http.Handler {
	svc := d.Service
	r := mux.NewRouter()
	r.Use(recoverer, accessLog)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		Index(d.Pages, d.Form, w, r)
	}).Methods("GET")
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		Results(svc, d.Pages, w, r)
	}).Methods("POST")

	r.HandleFunc("/api/suggest", func(w http.ResponseWriter, r *http.Request) {
		APISuggest(svc, w, r)
	}).Methods("POST")

	r.HandleFunc("/recipes", func(w http.ResponseWriter, r *http.Request) {
		GetRecipes(svc, w, r)
	}).Methods("GET")
	r.HandleFunc("/recipe", func(w http.ResponseWriter, r *http.Request) {
		GetRecipe(svc, w, r)
	}).Methods("GET")
	r.HandleFunc("/recipe", func(w http.ResponseWriter, r *http.Request) {
		CreateRecipe(svc, w, r)
	}).Methods("POST")
	r.HandleFunc("/update/recipe", func(w http.ResponseWriter, r *http.Request) {
		UpdateRecipe(svc, w, r)
	}).Methods("PUT")
	r.HandleFunc("/delete/recipe", func(w http.ResponseWriter, r *http.Request) {
		DeleteRecipe(svc, w, r)
	}).Methods("DELETE")

	r.HandleFunc("/ingredients", func(w http.ResponseWriter, r *http.Request) {
		GetIngredients(svc, w, r)
	}).Methods("GET")
	r.HandleFunc("/ingredients/{name}/pairings", func(w http.ResponseWriter, r *http.Request) {
		GetPairings(svc, w, r)
	}).Methods("GET")

	r.HandleFunc("/image", func(w http.ResponseWriter, r *http.Request) {
		FetchImageHandler(d.Image, w, r)
	}).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"recipes":     svc.Graph().RecipeCount(),
			"ingredients": svc.Graph().IngredientCount(),
		})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: !containsWildcard(origins),
	})
	return c.Handler(r)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
