package model

import "fmt"

// Store is a physical retail location. At most one is selected at a time;
// the selection scopes the cart and all inventory lookups.
type Store struct {
	StoreID int    `json:"store_id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Label renders a short single-line address for CLI output.
func (s Store) Label() string {
	return fmt.Sprintf("%s, %s, %s %s", s.Street, s.City, s.State, s.Zip)
}
