// Package models defines the ledger's data records: transactions,
// categories and the immutable snapshots handed to readers.
package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts are stored as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// File permissions
const (
	PermissionDirectory = 0750
	PermissionDataFile  = 0600
	PermissionExport    = 0644
)
