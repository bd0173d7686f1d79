// Package store owns the ledger state (transactions and categories) and
// the money shortcut presets, and keeps both in sync with the kv store.
package store

// Keys under which documents are persisted.
const (
	KeyTransactions   = "transactions"
	KeyCategories     = "categories"
	KeyMoneyShortcuts = "moneyShortcuts"
)
