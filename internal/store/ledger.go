package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fjacquet/pfma/internal/kvstore"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/validation"
)

var (
	// ErrDuplicateID is returned when an added record reuses a live id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidTransaction is returned for transactions missing required data.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInvalidCategory is returned for categories missing required data.
	ErrInvalidCategory = errors.New("invalid category")
)

// Subscriber receives the ledger state after each committed mutation.
// Subscribers may read from the store but must not mutate it.
type Subscriber func(models.Snapshot)

// LedgerStore is the single source of truth for transactions and
// categories. Every accepted mutation is written to the kv store before it
// becomes visible to readers.
type LedgerStore struct {
	kv     kvstore.Store
	logger logging.Logger

	// writeMu serialises mutations, including subscriber notification.
	writeMu sync.Mutex

	stateMu      sync.RWMutex
	transactions []models.Transaction
	categories   []models.Category

	subMu       sync.Mutex
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewLedgerStore rehydrates the ledger from kv. Missing or unusable
// documents fall back to an empty transaction list and the default
// categories.
func NewLedgerStore(kv kvstore.Store, logger logging.Logger) *LedgerStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &LedgerStore{
		kv:          kv,
		logger:      logger.WithField(logging.FieldComponent, "ledger"),
		subscribers: make(map[int]Subscriber),
	}

	if txs, ok := loadDocument[models.Transaction](kv, KeyTransactions, s.logger); ok {
		s.transactions = txs
	} else {
		s.transactions = []models.Transaction{}
	}
	if cats, ok := loadDocument[models.Category](kv, KeyCategories, s.logger); ok {
		s.categories = cats
	} else {
		s.categories = models.DefaultCategories()
	}

	s.logger.Debug("Ledger loaded",
		logging.F("transactions", len(s.transactions)),
		logging.F("categories", len(s.categories)))
	return s
}

// Snapshot returns a copy of the current state, newest transaction first.
func (s *LedgerStore) Snapshot() models.Snapshot {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return models.NewSnapshot(s.transactions, s.categories)
}

// HasTransaction reports whether a live transaction has id.
func (s *LedgerStore) HasTransaction(id int64) bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return indexOfTransaction(s.transactions, id) >= 0
}

// FindCategoryByName resolves a transaction's category reference. Names
// are matched case-insensitively after trimming.
func (s *LedgerStore) FindCategoryByName(name string) (models.Category, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	want := strings.TrimSpace(name)
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, want) {
			return c, true
		}
	}
	return models.Category{}, false
}

// NextCategoryID returns one more than the highest live category id.
func (s *LedgerStore) NextCategoryID() int64 {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	var maxID int64
	for _, c := range s.categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

// AddTransaction prepends t to the ledger.
func (s *LedgerStore) AddTransaction(t models.Transaction) error {
	if err := validation.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	if strings.TrimSpace(t.Text) == "" || strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: text and category must not be blank", ErrInvalidTransaction)
	}

	return s.mutate("add_transaction", func(txs []models.Transaction, cats []models.Category) ([]models.Transaction, []models.Category, error) {
		if indexOfTransaction(txs, t.ID) >= 0 {
			return nil, nil, fmt.Errorf("%w: transaction %d", ErrDuplicateID, t.ID)
		}
		next := make([]models.Transaction, 0, len(txs)+1)
		next = append(next, t)
		next = append(next, txs...)
		return next, cats, nil
	}, logging.F(logging.FieldTransactionID, t.ID), logging.F(logging.FieldAmount, t.Amount.String()))
}

// DeleteTransaction removes the transaction with id. Unknown ids are a no-op.
func (s *LedgerStore) DeleteTransaction(id int64) error {
	return s.mutate("delete_transaction", func(txs []models.Transaction, cats []models.Category) ([]models.Transaction, []models.Category, error) {
		next := make([]models.Transaction, 0, len(txs))
		for _, t := range txs {
			if t.ID != id {
				next = append(next, t)
			}
		}
		return next, cats, nil
	}, logging.F(logging.FieldTransactionID, id))
}

// AddCategory appends c to the category list.
func (s *LedgerStore) AddCategory(c models.Category) error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidCategory)
	}

	return s.mutate("add_category", func(txs []models.Transaction, cats []models.Category) ([]models.Transaction, []models.Category, error) {
		for _, existing := range cats {
			if existing.ID == c.ID {
				return nil, nil, fmt.Errorf("%w: category %d", ErrDuplicateID, c.ID)
			}
		}
		next := make([]models.Category, 0, len(cats)+1)
		next = append(next, cats...)
		next = append(next, c)
		return txs, next, nil
	}, logging.F(logging.FieldCategoryID, c.ID), logging.F(logging.FieldCategory, c.Name))
}

// DeleteCategory removes the category with id. Transactions that reference
// it by name are left untouched. Unknown ids are a no-op.
func (s *LedgerStore) DeleteCategory(id int64) error {
	return s.mutate("delete_category", func(txs []models.Transaction, cats []models.Category) ([]models.Transaction, []models.Category, error) {
		next := make([]models.Category, 0, len(cats))
		for _, c := range cats {
			if c.ID != id {
				next = append(next, c)
			}
		}
		return txs, next, nil
	}, logging.F(logging.FieldCategoryID, id))
}

// Reset wipes every key of the kv store, including ones the ledger does not
// own, and starts over with no transactions and the default categories.
func (s *LedgerStore) Reset() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.kv.Clear(); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}

	// An empty store rehydrates to the seed state, so memory follows it
	// even when writing the seed documents fails.
	txs, cats := []models.Transaction{}, models.DefaultCategories()
	err := s.persist(txs, cats)
	s.applyLocked(txs, cats)
	if err != nil {
		s.logger.WithError(err).Warn("Storage cleared but seed documents were not written",
			logging.F(logging.FieldOperation, "reset"))
		return fmt.Errorf("reset: %w", err)
	}
	s.logger.Debug("Mutation committed", logging.F(logging.FieldOperation, "reset"))
	return nil
}

// Subscribe registers fn to be called after every committed mutation and
// returns a function that removes it.
func (s *LedgerStore) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subscribers, id)
		})
	}
}

type mutation func([]models.Transaction, []models.Category) ([]models.Transaction, []models.Category, error)

func (s *LedgerStore) mutate(op string, fn mutation, fields ...logging.Field) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.stateMu.RLock()
	txs, cats := s.transactions, s.categories
	s.stateMu.RUnlock()

	nextTxs, nextCats, err := fn(txs, cats)
	if err != nil {
		return err
	}
	return s.commitLocked(op, nextTxs, nextCats, fields...)
}

// commitLocked persists the next state, swaps it in and notifies
// subscribers. writeMu must be held.
func (s *LedgerStore) commitLocked(op string, txs []models.Transaction, cats []models.Category, fields ...logging.Field) error {
	log := s.logger.WithFields(append(fields, logging.F(logging.FieldOperation, op))...)

	if err := s.persist(txs, cats); err != nil {
		log.WithError(err).Error("Mutation rejected, storage write failed")
		return err
	}

	s.applyLocked(txs, cats)
	log.Debug("Mutation committed")
	return nil
}

// applyLocked swaps in the next state and notifies subscribers. writeMu
// must be held.
func (s *LedgerStore) applyLocked(txs []models.Transaction, cats []models.Category) {
	s.stateMu.Lock()
	s.transactions = txs
	s.categories = cats
	s.stateMu.Unlock()

	s.notify(models.NewSnapshot(txs, cats))
}

func (s *LedgerStore) persist(txs []models.Transaction, cats []models.Category) error {
	txData, err := encodeDocument(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	catData, err := encodeDocument(cats)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := s.kv.SetBatch([]kvstore.Entry{
		{Key: KeyTransactions, Value: txData},
		{Key: KeyCategories, Value: catData},
	}); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

func (s *LedgerStore) notify(snap models.Snapshot) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	subs := make([]Subscriber, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		subs = append(subs, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(models.NewSnapshot(snap.Transactions, snap.Categories))
	}
}

func indexOfTransaction(txs []models.Transaction, id int64) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
