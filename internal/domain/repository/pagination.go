package repository

// Page selects a window of a list query.
type Page struct {
	Offset int
	Limit  int
}

// Ordering sorts a list query by one field.
type Ordering struct {
	Field      string
	Descending bool
}
