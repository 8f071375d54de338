package models

type Recipe struct {
	ID           string   `firestore:"id" json:"id"`
	Name         string   `firestore:"Name" json:"name"`
	Description  string   `firestore:"Description" json:"description"`
	Ingredients  []string `firestore:"Ingredients" json:"ingredients"`
	Instructions []string `firestore:"Instructions" json:"instructions"`
	Notes        string   `firestore:"Notes" json:"notes"`
	Tags         []string `firestore:"tags" json:"tags"`
	ImageURL     string   `firestore:"imageURL" json:"imageURL"`
	OriginalURL  string   `firestore:"OriginalURL" json:"originalURL"`
}

// EnsureSlices replaces nil slices with empty ones so they encode as [].
func (r *Recipe) EnsureSlices() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}
