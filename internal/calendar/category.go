package calendar

import "fmt"

// Category identifies one of the three fixed booking tracks shown as tabs.
type Category string

const (
	CategoryFirst  Category = "First"
	CategorySecond Category = "Second"
	CategoryThird  Category = "Third"
)

// Categories returns the fixed set of booking categories in display order.
func Categories() []Category {
	return []Category{CategoryFirst, CategorySecond, CategoryThird}
}

// ParseCategory validates a raw category name supplied by a caller.
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryFirst, CategorySecond, CategoryThird:
		return Category(raw), nil
	}
	return "", fmt.Errorf("unknown category %q", raw)
}
