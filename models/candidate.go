package models

// Candidate is one entrant of the bracket, supplied by the catalog.
type Candidate struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
