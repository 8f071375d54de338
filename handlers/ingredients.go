package handlers

import (
	"net/http"
	"strconv"

	"flavorgraph/recommend"

	"github.com/gorilla/mux"
)

func GetIngredients(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, svc.Graph().Ingredients())
}

// GetPairings lists ingredients that share recipes with {name}.
func GetPairings(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	name := svc.Normalizer().Normalize(mux.Vars(r)["name"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	pairings, err := svc.Graph().Pairings(name, limit)
	if err != nil {
		writeAPIError(w, r, "Failed to compute pairings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ingredient": name,
		"pairings":   pairings,
	})
}
