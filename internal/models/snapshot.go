package models

// Snapshot is a read-only view of the ledger at one point in time.
// Its slices never alias the store's internal state.
type Snapshot struct {
	Transactions []Transaction `json:"transactions" yaml:"transactions"`
	Categories   []Category    `json:"categories" yaml:"categories"`
}

// NewSnapshot copies both slices into a new Snapshot.
func NewSnapshot(transactions []Transaction, categories []Category) Snapshot {
	return Snapshot{
		Transactions: append([]Transaction{}, transactions...),
		Categories:   append([]Category{}, categories...),
	}
}

// Category returns the category whose name is exactly name, the way
// transactions reference it.
func (s Snapshot) Category(name string) (Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryColor returns the colour of the category called name, or
// OrphanColor when no category has that exact name.
func (s Snapshot) CategoryColor(name string) string {
	if c, ok := s.Category(name); ok {
		return c.Color
	}
	return OrphanColor
}
