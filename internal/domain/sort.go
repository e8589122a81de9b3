package domain

// SortField is one key of a sort expression.
type SortField struct {
	Field string
	Desc  bool
}
