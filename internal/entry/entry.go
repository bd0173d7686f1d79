// Package entry turns the fields of the expense form into a stored
// transaction, creating the typed category when it does not exist yet.
package entry

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"fjacquet/pfma/internal/dateutils"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/models"
	"fjacquet/pfma/internal/parsererror"
)

// MissingFieldsMessage is shown when any form field is left empty.
const MissingFieldsMessage = "Please fill in all fields: Description, Amount, and Category"

// IDSpace bounds generated transaction ids: [0, IDSpace).
const IDSpace = 100_000_000

const maxIDAttempts = 64

// ErrIDSpaceExhausted is returned when no free transaction id was found.
var ErrIDSpaceExhausted = errors.New("could not allocate a free transaction id")

// Ledger is the part of the ledger store the form writes through.
type Ledger interface {
	AddTransaction(t models.Transaction) error
	AddCategory(c models.Category) error
	DeleteCategory(id int64) error
	FindCategoryByName(name string) (models.Category, bool)
	HasTransaction(id int64) bool
	NextCategoryID() int64
}

// Form holds the raw form fields.
type Form struct {
	Text     string
	Amount   string
	Category string
}

// Submitter validates forms and records them as expenses.
type Submitter struct {
	ledger  Ledger
	logger  logging.Logger
	now     func() time.Time
	intn    func(n int) int
	palette []string
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithClock sets the time source for transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// WithRandom sets the source used for ids and category colours.
func WithRandom(intn func(n int) int) Option {
	return func(s *Submitter) { s.intn = intn }
}

// WithPalette overrides the colours offered to new categories.
func WithPalette(colors []string) Option {
	return func(s *Submitter) {
		if len(colors) > 0 {
			s.palette = colors
		}
	}
}

// NewSubmitter creates a Submitter writing to ledger.
func NewSubmitter(ledger Ledger, logger logging.Logger, opts ...Option) *Submitter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Submitter{
		ledger:  ledger,
		logger:  logger.WithField(logging.FieldComponent, "entry"),
		now:     time.Now,
		intn:    rand.Intn,
		palette: models.CategoryPalette,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates form and records it as an expense. Nothing is stored
// when validation fails.
func (s *Submitter) Submit(form Form) (models.Transaction, error) {
	text := strings.TrimSpace(form.Text)
	rawAmount := strings.TrimSpace(form.Amount)
	categoryName := strings.TrimSpace(form.Category)

	if text == "" || rawAmount == "" || categoryName == "" {
		return models.Transaction{}, &parsererror.ValidationError{Reason: MissingFieldsMessage}
	}

	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Source: "entry",
			Field:  "amount",
			Value:  form.Amount,
			Err:    err,
		}
	}

	id, err := s.newTransactionID()
	if err != nil {
		return models.Transaction{}, err
	}

	created, err := s.ensureCategory(categoryName)
	if err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		ID:       id,
		Text:     text,
		Amount:   models.ExpenseAmount(amount),
		Category: categoryName,
		Date:     dateutils.EntryTimestamp(s.now()),
	}
	if err := s.ledger.AddTransaction(t); err != nil {
		if created != nil {
			s.dropCategory(*created)
		}
		return models.Transaction{}, fmt.Errorf("record expense: %w", err)
	}

	s.logger.Info("Expense recorded",
		logging.F(logging.FieldTransactionID, t.ID),
		logging.F(logging.FieldAmount, t.Amount.String()),
		logging.F(logging.FieldCategory, t.Category))
	return t, nil
}

// ensureCategory adds name as an expense category unless a category with
// the same name, ignoring case, already exists. It returns the category it
// created, if any.
func (s *Submitter) ensureCategory(name string) (*models.Category, error) {
	if _, ok := s.ledger.FindCategoryByName(name); ok {
		return nil, nil
	}
	c := models.Category{
		ID:    s.ledger.NextCategoryID(),
		Name:  name,
		Type:  models.CategoryExpense,
		Color: s.palette[s.intn(len(s.palette))],
	}
	if err := s.ledger.AddCategory(c); err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	s.logger.Info("Category created",
		logging.F(logging.FieldCategoryID, c.ID),
		logging.F(logging.FieldCategory, c.Name))
	return &c, nil
}

// dropCategory removes a category created for an expense that was not
// recorded.
func (s *Submitter) dropCategory(c models.Category) {
	if err := s.ledger.DeleteCategory(c.ID); err != nil {
		s.logger.WithError(err).Warn("Could not remove category of rejected expense",
			logging.F(logging.FieldCategoryID, c.ID))
	}
}

func (s *Submitter) newTransactionID() (int64, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := int64(s.intn(IDSpace))
		if !s.ledger.HasTransaction(id) {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}
