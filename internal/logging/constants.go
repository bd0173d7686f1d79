package logging

// Field names shared by every component so log lines can be filtered
// consistently.
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldPath          = "path"
	FieldTransactionID = "transaction_id"
	FieldCategoryID    = "category_id"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldCount         = "count"
	FieldView          = "view"
	FieldWindow        = "window"
	FieldFormat        = "format"
	FieldReason        = "reason"
	FieldError         = "error"
)
