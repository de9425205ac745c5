package entities

import "fmt"

// MissingCategoryError indicates the catalog lacks a category the
// creator depends on. The fallback category is reference data seeded
// with the catalog; it is never auto-created.
type MissingCategoryError struct {
	Name string
}

func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("required skill category %q is not in the catalog", e.Name)
}
