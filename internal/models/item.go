package models

// Item is a catalog entry. Menus reference it by ID.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Menu is a priced bundle of catalog items. Items holds item IDs, live references
// that are pruned when an item is deleted.
type Menu struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Items []string `json:"items"`
}
