package domain

// MenuItem is a single drink or dish on the café menu.
type MenuItem struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           string   `json:"price"`
	Available       bool     `json:"available"`
	ImageURL        string   `json:"imageUrl"`
	PreparationTime *int     `json:"preparationTime"`
	Tags            []string `json:"tags"`
}

// MenuCategory groups menu items.
type MenuCategory struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IconEmoji   string     `json:"iconEmoji"`
	Items       []MenuItem `json:"items"`
}
