package models

// Item is a collection category offered by the points API.
type Item struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// State is a Brazilian federative unit as returned by the IBGE localities API.
type State struct {
	ID       int    `json:"id"`
	Name     string `json:"nome"`
	Initials string `json:"sigla"`
}

// City is a municipality of a State.
type City struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}
