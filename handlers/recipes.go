package handlers

import (
	"net/http"

	"flavorgraph/models"
	"flavorgraph/recommend"
)

func GetRecipes(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	recipes, err := svc.ListRecipes(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list recipes", err)
		return
	}
	for i := range recipes {
		recipes[i].EnsureSlices()
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func GetRecipe(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	recipeID := r.URL.Query().Get("id")
	if recipeID == "" {
		http.Error(w, "Missing 'id' query parameter", http.StatusBadRequest)
		return
	}

	recipe, err := svc.GetRecipe(r.Context(), recipeID)
	if err != nil {
		writeError(w, r, "Failed to retrieve recipe", err)
		return
	}
	recipe.EnsureSlices()
	writeJSON(w, http.StatusOK, recipe)
}

func decodeRecipe(w http.ResponseWriter, r *http.Request) (models.Recipe, error) {
	var recipe models.Recipe
	if err := decodeBody(w, r, &recipe, true); err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func CreateRecipe(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	recipe, err := decodeRecipe(w, r)
	if err != nil {
		writeError(w, r, "Invalid request payload", err)
		return
	}

	created, err := svc.CreateRecipe(r.Context(), recipe)
	if err != nil {
		writeError(w, r, "Failed to create recipe", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateRecipe replaces the recipe named by the id query parameter.
func UpdateRecipe(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	recipeID := r.URL.Query().Get("id")
	if recipeID == "" {
		http.Error(w, "Missing 'id' query parameter", http.StatusBadRequest)
		return
	}

	recipe, err := decodeRecipe(w, r)
	if err != nil {
		writeError(w, r, "Invalid request payload", err)
		return
	}

	updated, err := svc.UpdateRecipe(r.Context(), recipeID, recipe)
	if err != nil {
		writeError(w, r, "Failed to update recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func DeleteRecipe(svc *recommend.Service, w http.ResponseWriter, r *http.Request) {
	recipeID := r.URL.Query().Get("id")
	if recipeID == "" {
		http.Error(w, "Missing 'id' query parameter", http.StatusBadRequest)
		return
	}

	if err := svc.DeleteRecipe(r.Context(), recipeID); err != nil {
		writeError(w, r, "Failed to delete recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
