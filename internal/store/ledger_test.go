package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/pfma/internal/kvstore"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
)

func newTransaction(id int64, text, category string, amount int64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       id,
		Text:     text,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     date,
	}
}

var jan15 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestNewLedgerStore_Defaults(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), logging.NewMockLogger())
	snap := s.Snapshot()

	assert.Empty(t, snap.Transactions)
	assert.NotNil(t, snap.Transactions)
	assert.Equal(t, models.DefaultCategories(), snap.Categories)
}

func TestNewLedgerStore_MalformedDocumentsFallBack(t *testing.T) {
	tests := []struct {
		name string
		txs    string
		cats   string
		reason string
	}{
		{name: "invalid json", txs: `{not json`, cats: `[{"id":`, reason: ReasonMalformed},
		{name: "json null", txs: `null`, cats: `null`, reason: ReasonNull},
		{name: "wrong shape", txs: `{"id":1}`, cats: `"Food"`, reason: ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			require.NoError(t, kv.Set(KeyTransactions, []byte(tt.txs)))
			require.NoError(t, kv.Set(KeyCategories, []byte(tt.cats)))
			logger := logging.NewMockLogger()

			s := NewLedgerStore(kv, logger)
			snap := s.Snapshot()

			assert.Empty(t, snap.Transactions)
			assert.Equal(t, models.DefaultCategories(), snap.Categories)
			warnings := logger.GetEntriesByLevel("WARN")
			require.Len(t, warnings, 2)
			for _, w := range warnings {
				assert.Contains(t, w.Fields, logging.F(logging.FieldReason, tt.reason))
			}
		})
	}
}

func TestNewLedgerStore_ReadErrorFallsBack(t *testing.T) {
	kv := kvstore.NewMockStore()
	kv.GetError = errors.New("disk unreadable")

	logger := logging.NewMockLogger()

	s := NewLedgerStore(kv, logger)
	assert.Empty(t, s.Snapshot().Transactions)
	assert.Len(t, s.Snapshot().Categories, 5)
	warnings := logger.GetEntriesByLevel("WARN")
	require.NotEmpty(t, warnings)
	for _, w := range warnings {
		assert.Contains(t, w.Fields, logging.F(logging.FieldReason, ReasonUnreadable))
	}
}

func TestNewLedgerStore_EmptyCategoriesKept(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(KeyCategories, []byte(`[]`)))

	s := NewLedgerStore(kv, nil)
	assert.Empty(t, s.Snapshot().Categories)
}

func TestNewLedgerStore_ReadsStoredDocuments(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(KeyTransactions, []byte(
		`[{"id":2,"text":"Bus","amount":-50,"category":"Transport","date":"2024-01-16T09:00:00.000Z"},`+
			`{"id":1,"text":"Lunch","amount":-250,"category":"Food","date":"2024-01-15T10:00:00.000Z"}]`)))
	require.NoError(t, kv.Set(KeyCategories, []byte(`[{"id":3,"name":"Food","type":"expense","color":"#EF4444"}]`)))

	s := NewLedgerStore(kv, nil)
	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, int64(2), snap.Transactions[0].ID)
	assert.Equal(t, []models.Category{{ID: 3, Name: "Food", Type: models.CategoryExpense, Color: "#EF4444"}}, snap.Categories)
}

func TestAddTransaction_PrependsAndPersists(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := NewLedgerStore(kv, nil)

	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))
	require.NoError(t, s.AddTransaction(newTransaction(2, "Bus", "Transport", -50, jan15.Add(time.Hour))))

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, int64(2), snap.Transactions[0].ID)
	assert.Equal(t, int64(1), snap.Transactions[1].ID)

	raw, err := kv.Get(KeyTransactions)
	require.NoError(t, err)
	var stored []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, float64(-50), stored[0]["amount"])
	assert.Equal(t, "Transport", stored[0]["category"])

	_, err = kv.Get(KeyCategories)
	assert.NoError(t, err, "categories are written alongside transactions")
}

func TestAddTransaction_Rejects(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), nil)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))

	tests := []struct {
		name    string
		tx      models.Transaction
		wantErr error
	}{
		{name: "duplicate id", tx: newTransaction(1, "Dinner", "Food", -300, jan15), wantErr: ErrDuplicateID},
		{name: "empty text", tx: newTransaction(2, "", "Food", -300, jan15), wantErr: ErrInvalidTransaction},
		{name: "blank text", tx: newTransaction(2, "  ", "Food", -300, jan15), wantErr: ErrInvalidTransaction},
		{name: "empty category", tx: newTransaction(2, "Dinner", "", -300, jan15), wantErr: ErrInvalidTransaction},
		{name: "zero date", tx: newTransaction(2, "Dinner", "Food", -300, time.Time{}), wantErr: ErrInvalidTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddTransaction(tt.tx)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, s.Snapshot().Transactions, 1)
		})
	}
}

func TestDeleteTransaction_Idempotent(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), nil)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))
	require.NoError(t, s.AddTransaction(newTransaction(2, "Bus", "Transport", -50, jan15)))

	require.NoError(t, s.DeleteTransaction(1))
	after := s.Snapshot()
	require.NoError(t, s.DeleteTransaction(1))

	assert.Equal(t, after, s.Snapshot())
	assert.False(t, s.HasTransaction(1))
	assert.True(t, s.HasTransaction(2))
}

func TestCategories_AddDeleteWithoutCascade(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), nil)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))

	gym := models.Category{ID: s.NextCategoryID(), Name: "Gym", Type: models.CategoryExpense, Color: "#8B5CF6"}
	assert.Equal(t, int64(6), gym.ID)
	require.NoError(t, s.AddCategory(gym))

	cats := s.Snapshot().Categories
	assert.Equal(t, gym, cats[len(cats)-1])

	err := s.AddCategory(models.Category{ID: 6, Name: "Other", Type: models.CategoryExpense})
	assert.ErrorIs(t, err, ErrDuplicateID)
	err = s.AddCategory(models.Category{ID: 7, Name: "", Type: models.CategoryExpense})
	assert.ErrorIs(t, err, ErrInvalidCategory)
	err = s.AddCategory(models.Category{ID: 7, Name: "Other", Type: "transfer"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// Deleting Food leaves its transactions orphaned, not removed.
	require.NoError(t, s.DeleteCategory(3))
	require.NoError(t, s.DeleteCategory(3))
	snap := s.Snapshot()
	assert.Len(t, snap.Categories, 5)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "Food", snap.Transactions[0].Category)
	_, found := s.FindCategoryByName("Food")
	assert.False(t, found)
}

func TestFindCategoryByName(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), nil)

	c, ok := s.FindCategoryByName(" food ")
	require.True(t, ok)
	assert.Equal(t, int64(3), c.ID)

	_, ok = s.FindCategoryByName("Groceries")
	assert.False(t, ok)
}

func TestLedgerStore_RoundTrip(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := NewLedgerStore(kv, nil)

	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))
	require.NoError(t, s.AddCategory(models.Category{ID: 6, Name: "Gym", Type: models.CategoryExpense, Color: "#8B5CF6"}))
	require.NoError(t, s.AddTransaction(models.Transaction{
		ID: 2, Text: "Bus", Amount: decimal.RequireFromString("-12.75"), Category: "Transport",
		Date: time.Date(2024, 3, 2, 8, 30, 0, 123000000, time.UTC),
	}))
	require.NoError(t, s.AddTransaction(newTransaction(3, "Salary", "Salary", 50000, jan15)))
	require.NoError(t, s.DeleteTransaction(1))
	require.NoError(t, s.DeleteCategory(2))

	before := s.Snapshot()
	reloaded := NewLedgerStore(kv, nil).Snapshot()

	require.Len(t, reloaded.Transactions, len(before.Transactions))
	for i := range before.Transactions {
		assert.True(t, before.Transactions[i].Equal(reloaded.Transactions[i]), "transaction %d", i)
	}
	assert.Equal(t, before.Categories, reloaded.Categories)
}

func TestLedgerStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	kv := kvstore.NewMockStore()
	logger := logging.NewMockLogger()
	s := NewLedgerStore(kv, logger)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))

	notified := 0
	s.Subscribe(func(models.Snapshot) { notified++ })

	kv.SetBatchError = errors.New("quota exceeded")
	before := s.Snapshot()

	err := s.AddTransaction(newTransaction(2, "Bus", "Transport", -50, jan15))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Error(t, s.DeleteTransaction(1))
	assert.Error(t, s.AddCategory(models.Category{ID: 9, Name: "Gym", Type: models.CategoryExpense}))

	assert.Equal(t, before, s.Snapshot())
	assert.Zero(t, notified)
	assert.NotEmpty(t, logger.GetEntriesByLevel("ERROR"))
}

func TestSubscribe(t *testing.T) {
	s := NewLedgerStore(kvstore.NewMemoryStore(), nil)

	var seen []models.Snapshot
	unsubscribe := s.Subscribe(func(snap models.Snapshot) {
		// Reading inside a subscriber must not deadlock.
		assert.Equal(t, len(snap.Transactions), len(s.Snapshot().Transactions))
		seen = append(seen, snap)
	})

	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))
	require.Len(t, seen, 1)
	assert.Len(t, seen[0].Transactions, 1)

	// Subscriber snapshots are copies.
	seen[0].Transactions[0].Text = "changed"
	assert.Equal(t, "Lunch", s.Snapshot().Transactions[0].Text)

	unsubscribe()
	unsubscribe()
	require.NoError(t, s.DeleteTransaction(1))
	assert.Len(t, seen, 1)
}

func TestReset(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := NewLedgerStore(kv, nil)
	shortcuts := NewShortcutStore(kv, nil)

	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))
	require.NoError(t, s.DeleteCategory(1))
	require.NoError(t, shortcuts.Add(decimal.NewFromInt(100)))

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, models.DefaultCategories(), snap.Categories)
	assert.Empty(t, shortcuts.List())

	reloaded := NewLedgerStore(kv, nil).Snapshot()
	assert.Empty(t, reloaded.Transactions)
	assert.Equal(t, models.DefaultCategories(), reloaded.Categories)
}

func TestReset_ClearFailure(t *testing.T) {
	kv := kvstore.NewMockStore()
	s := NewLedgerStore(kv, nil)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))

	kv.ClearError = errors.New("locked")
	assert.Error(t, s.Reset())
	assert.Len(t, s.Snapshot().Transactions, 1)
}

func TestReset_SeedWriteFailure(t *testing.T) {
	kv := kvstore.NewMockStore()
	s := NewLedgerStore(kv, nil)
	require.NoError(t, s.AddTransaction(newTransaction(1, "Lunch", "Food", -250, jan15)))

	var notified []models.Snapshot
	s.Subscribe(func(snap models.Snapshot) { notified = append(notified, snap) })

	kv.SetBatchError = errors.New("disk full")
	err := s.Reset()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	snap := s.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.Equal(t, models.DefaultCategories(), snap.Categories)
	require.Len(t, notified, 1)
	assert.Empty(t, notified[0].Transactions)

	kv.SetBatchError = nil
	reloaded := NewLedgerStore(kv, nil).Snapshot()
	assert.Empty(t, reloaded.Transactions)
	assert.Equal(t, models.DefaultCategories(), reloaded.Categories)
}
