package models

// MenuItem is one purchasable position. The catalog is loaded once at startup
// and never mutated afterwards.
type MenuItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
