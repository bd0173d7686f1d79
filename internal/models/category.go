package models

import (
	"fmt"
	"strings"
)

// CategoryType classifies a category as income or expense.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// ParseCategoryType parses a category type name, case-insensitively.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown category type %q (want income or expense)", s)
	}
	return t, nil
}

// Category is a named, coloured classification for transactions.
type Category struct {
	ID    int64        `json:"id" yaml:"id" csv:"id"`
	Name  string       `json:"name" yaml:"name" csv:"name" validate:"required"`
	Type  CategoryType `json:"type" yaml:"type" csv:"type" validate:"required,category_type"`
	Color string       `json:"color" yaml:"color" csv:"color" validate:"omitempty,hex_color"`
}

// OrphanColor is used for transactions whose category no longer exists.
const OrphanColor = "#9CA3AF"

// CategoryPalette holds the colours assigned to categories created on the fly.
var CategoryPalette = []string{
	"#EF4444", "#F59E0B", "#10B981", "#3B82F6",
	"#8B5CF6", "#EC4899", "#14B8A6", "#F97316",
}

// DefaultCategories returns a fresh copy of the seed categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Salary", Type: CategoryIncome, Color: "#10B981"},
		{ID: 2, Name: "Freelance", Type: CategoryIncome, Color: "#34D399"},
		{ID: 3, Name: "Food", Type: CategoryExpense, Color: "#EF4444"},
		{ID: 4, Name: "Rent", Type: CategoryExpense, Color: "#F59E0B"},
		{ID: 5, Name: "Transport", Type: CategoryExpense, Color: "#3B82F6"},
	}
}
