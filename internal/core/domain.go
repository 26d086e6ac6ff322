package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountDaily   AccountType = "DAILY"
	AccountSavings AccountType = "SAVINGS"

	TransactionExpense TransactionType = "EXPENSE"
	TransactionIncome  TransactionType = "INCOME"

	// DefaultAccountColor is applied when an account is created without a color.
	DefaultAccountColor = "#9333ea"

	// DefaultAccountName names the DAILY account created at registration.
	DefaultAccountName = "Main account"
)

// DefaultAccountNumber is the placeholder number of the registration account.
var DefaultAccountNumber = strings.Repeat("0", 26)

type (
	AccountType     string
	TransactionType string

	// Identity is the authenticated caller carried in the request context.
	Identity struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	User struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		FirstName    string    `json:"firstName"`
		LastName     string    `json:"lastName"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	Session struct {
		Token     string
		UserID    string
		Email     string
		ExpiresAt time.Time
		CreatedAt time.Time
	}

	BankAccount struct {
		ID                string           `json:"id"`
		UserID            string           `json:"userId"`
		AccountType       AccountType      `json:"accountType" validate:"required,oneof=DAILY SAVINGS"`
		Name              string           `json:"name" validate:"required,min=3,max=50"`
		AccountNumber     string           `json:"accountNumber" validate:"required,accountnumber"`
		Balance           Money            `json:"balance"`
		InterestRate      *decimal.Decimal `json:"interestRate"`
		InterestRateLimit *Money           `json:"interestRateLimit"`
		InterestStartDate *Date            `json:"interestStartDate"`
		InterestEndDate   *Date            `json:"interestEndDate"`
		TargetAmount      *Money           `json:"targetAmount"`
		TargetDate        *Date            `json:"targetDate"`
		Color             string           `json:"color" validate:"required,rgbcolor"`
		CreatedAt         time.Time        `json:"createdAt"`
		UpdatedAt         time.Time        `json:"updatedAt"`
	}

	Category struct {
		ID           string    `json:"id"`
		UserID       string    `json:"userId"`
		Name         string    `json:"name" validate:"required,min=2,max=50"`
		Color        string    `json:"color" validate:"required,rgbcolor"`
		Budget       Money     `json:"budget"`
		CurrentSpent Money     `json:"currentSpent"`
		CreatedAt    time.Time `json:"createdAt"`
		UpdatedAt    time.Time `json:"updatedAt"`
	}

	// AccountRef and CategoryRef are the summaries embedded in transaction reads.
	AccountRef struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		AccountType AccountType `json:"accountType"`
		Color       string      `json:"color"`
	}

	CategoryRef struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	Transaction struct {
		ID          string          `json:"id"`
		UserID      string          `json:"userId"`
		AccountID   string          `json:"accountId" validate:"required"`
		CategoryID  string          `json:"categoryId,omitempty"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description" validate:"required,min=3,max=200"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type" validate:"required,oneof=EXPENSE INCOME"`
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`

		BankAccount *AccountRef  `json:"bankAccount,omitempty"`
		Category    *CategoryRef `json:"category,omitempty"`
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrHasTransactions    = errors.New("has associated transactions")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
)

// NotFoundError names the missing resource and matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (t AccountType) Valid() bool {
	return t == AccountDaily || t == AccountSavings
}

func (t TransactionType) Valid() bool {
	return t == TransactionExpense || t == TransactionIncome
}

// Identity returns the session identity of the user.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeAccountNumber strips all whitespace from an account number.
func NormalizeAccountNumber(n string) string {
	return strings.Join(strings.Fields(n), "")
}

// Validate checks the account fields, including the SAVINGS-only ones.
// Interest and target fields are cleared on DAILY accounts.
func (a *BankAccount) Validate() error {
	a.AccountNumber = NormalizeAccountNumber(a.AccountNumber)
	ve := &ValidationError{}
	ve.check(a)

	if a.AccountType != AccountSavings {
		a.InterestRate = nil
		a.InterestRateLimit = nil
		a.InterestStartDate = nil
		a.InterestEndDate = nil
		a.TargetAmount = nil
		a.TargetDate = nil
		return ve.OrNil()
	}

	switch {
	case a.InterestRate == nil:
		ve.Add("interestRate", "is required for savings accounts")
	case a.InterestRate.IsNegative() || a.InterestRate.GreaterThan(decimal.NewFromInt(100)):
		ve.Add("interestRate", "must be between 0 and 100")
	}
	switch {
	case a.InterestRateLimit == nil:
		ve.Add("interestRateLimit", "is required for savings accounts")
	case a.InterestRateLimit.Cents < 0:
		ve.Add("interestRateLimit", "must not be negative")
	}
	if a.InterestStartDate == nil {
		ve.Add("interestStartDate", "is required for savings accounts")
	}
	if a.InterestEndDate == nil {
		ve.Add("interestEndDate", "is required for savings accounts")
	}
	if a.InterestStartDate != nil && a.InterestEndDate != nil && a.InterestEndDate.Before(a.InterestStartDate.Time) {
		ve.Add("interestEndDate", "must not be before interestStartDate")
	}
	switch {
	case a.TargetAmount == nil:
		ve.Add("targetAmount", "is required for savings accounts")
	case a.TargetAmount.Cents <= 0:
		ve.Add("targetAmount", "must be greater than 0")
	}
	if a.TargetDate == nil {
		ve.Add("targetDate", "is required for savings accounts")
	}
	return ve.OrNil()
}

func (c *Category) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	ve := &ValidationError{}
	ve.check(c)
	if c.Budget.Cents < 0 {
		ve.Add("budget", "must not be negative")
	}
	return ve.OrNil()
}

// Validate checks the transaction against today's date. INCOME transactions
// never carry a category.
func (t *Transaction) Validate(today Date) error {
	t.Description = strings.TrimSpace(t.Description)
	if t.Type == TransactionIncome {
		t.CategoryID = ""
	}
	ve := &ValidationError{}
	ve.check(t)
	if t.Amount.Cents <= 0 {
		ve.Add("amount", "must be greater than 0")
	}
	switch {
	case t.Date.IsZero():
		ve.Add("date", "is required")
	case t.Date.After(today.Time):
		ve.Add("date", "must not be in the future")
	}
	if t.Type == TransactionExpense && t.CategoryID == "" {
		ve.Add("categoryId", "is required for expenses")
	}
	return ve.OrNil()
}
