package models

// Order is one submitted order. JSON field names mirror the orders file
// layout: the user is stored by display name, items keep selection order and
// duplicates. An order never persists with an empty item list — removing the
// last item deletes the whole record.
type Order struct {
	User  string   `json:"user"`
	Items []string `json:"order"`
}

// ItemCount is one row of the totals section in the all-orders view.
type ItemCount struct {
	Name  string
	Count int
}
