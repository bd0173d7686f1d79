package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"fjacquet/pfma/internal/kvstore"
	"fjacquet/pfma/internal/logging"
)

// MaxShortcuts caps the number of stored money shortcuts.
const MaxShortcuts = 5

var (
	// ErrShortcutLimit is returned when adding to a full shortcut list.
	ErrShortcutLimit = fmt.Errorf("at most %d money shortcuts can be stored", MaxShortcuts)
	// ErrShortcutIndex is returned for an index outside the shortcut list.
	ErrShortcutIndex = errors.New("shortcut index out of range")
	// ErrShortcutAmount is returned for non-positive shortcut amounts.
	ErrShortcutAmount = errors.New("shortcut amount must be positive")
)

// ShortcutStore manages the preset amounts offered when recording an
// expense. It reads through to the kv store on every call, so a ledger
// Reset is picked up without coordination.
type ShortcutStore struct {
	mu     sync.Mutex
	kv     kvstore.Store
	logger logging.Logger
}

// NewShortcutStore creates a ShortcutStore over kv.
func NewShortcutStore(kv kvstore.Store, logger logging.Logger) *ShortcutStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ShortcutStore{
		kv:     kv,
		logger: logger.WithField(logging.FieldComponent, "shortcuts"),
	}
}

// List returns the stored shortcuts in insertion order.
func (s *ShortcutStore) List() []decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// At returns the shortcut at index (0-based).
func (s *ShortcutStore) At(index int) (decimal.Decimal, error) {
	list := s.List()
	if index < 0 || index >= len(list) {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrShortcutIndex, index)
	}
	return list[index], nil
}

// Add appends amount to the list.
func (s *ShortcutStore) Add(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrShortcutAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	if len(list) >= MaxShortcuts {
		return ErrShortcutLimit
	}
	list = append(list, amount)
	if err := s.save(list); err != nil {
		return err
	}
	s.logger.Debug("Shortcut added", logging.F(logging.FieldAmount, amount.String()), logging.F(logging.FieldCount, len(list)))
	return nil
}

// Remove deletes the shortcut at index (0-based).
func (s *ShortcutStore) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %d", ErrShortcutIndex, index)
	}
	next := make([]decimal.Decimal, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)
	if err := s.save(next); err != nil {
		return err
	}
	s.logger.Debug("Shortcut removed", logging.F(logging.FieldCount, len(next)))
	return nil
}

func (s *ShortcutStore) load() []decimal.Decimal {
	list, ok := loadDocument[decimal.Decimal](s.kv, KeyMoneyShortcuts, s.logger)
	if !ok {
		return []decimal.Decimal{}
	}
	return list
}

func (s *ShortcutStore) save(list []decimal.Decimal) error {
	data, err := encodeDocument(list)
	if err != nil {
		return fmt.Errorf("encode shortcuts: %w", err)
	}
	if err := s.kv.Set(KeyMoneyShortcuts, data); err != nil {
		return fmt.Errorf("persist shortcuts: %w", err)
	}
	return nil
}
