package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Request payloads. Pointer fields distinguish "absent" from zero values so
// one type serves both create and partial update.
type (
	RegisterInput struct {
		Email            string `json:"email" validate:"required,email"`
		Password         string `json:"password" validate:"required,password"`
		FirstName        string `json:"firstName" validate:"max=50"`
		LastName         string `json:"lastName" validate:"max=50"`
		LoginAfterCreate bool   `json:"loginAfterCreate"`
	}

	LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	AccountInput struct {
		AccountType       *AccountType     `json:"accountType"`
		Name              *string          `json:"name"`
		AccountNumber     *string          `json:"accountNumber"`
		Balance           *Money           `json:"balance"`
		InterestRate      *decimal.Decimal `json:"interestRate"`
		InterestRateLimit *Money           `json:"interestRateLimit"`
		InterestStartDate *Date            `json:"interestStartDate"`
		InterestEndDate   *Date            `json:"interestEndDate"`
		TargetAmount      *Money           `json:"targetAmount"`
		TargetDate        *Date            `json:"targetDate"`
		Color             *string          `json:"color"`
	}

	CategoryInput struct {
		Name   *string `json:"name"`
		Color  *string `json:"color"`
		Budget *Money  `json:"budget"`
	}

	TransactionInput struct {
		Amount      *Money           `json:"amount"`
		Description *string          `json:"description"`
		Date        *Date            `json:"date"`
		Type        *TransactionType `json:"type"`
		AccountID   *string          `json:"accountId"`
		CategoryID  *string          `json:"categoryId"`
	}
)

func (in *RegisterInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	ve := &ValidationError{}
	ve.check(in)
	return ve.OrNil()
}

func (in *LoginInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	ve := &ValidationError{}
	ve.check(in)
	return ve.OrNil()
}

// NewAccount builds and validates an account from a create payload. The
// opening balance is required and must not be negative.
func (in AccountInput) NewAccount(userID string) (BankAccount, error) {
	a := BankAccount{UserID: userID, Color: DefaultAccountColor}
	in.ApplyTo(&a)
	if in.Balance != nil {
		a.Balance = *in.Balance
	}
	err := a.Validate()
	ve, _ := err.(*ValidationError)
	if ve == nil {
		ve = &ValidationError{}
	}
	switch {
	case in.Balance == nil:
		ve.Add("balance", "is required")
	case in.Balance.Cents < 0:
		ve.Add("balance", "must not be negative")
	}
	return a, ve.OrNil()
}

// ApplyTo copies every present field except the balance, which only the
// ledger may change after creation.
func (in AccountInput) ApplyTo(a *BankAccount) {
	if in.AccountType != nil {
		a.AccountType = AccountType(strings.ToUpper(string(*in.AccountType)))
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.AccountNumber != nil {
		a.AccountNumber = *in.AccountNumber
	}
	if in.InterestRate != nil {
		a.InterestRate = in.InterestRate
	}
	if in.InterestRateLimit != nil {
		a.InterestRateLimit = in.InterestRateLimit
	}
	if in.InterestStartDate != nil {
		a.InterestStartDate = in.InterestStartDate
	}
	if in.InterestEndDate != nil {
		a.InterestEndDate = in.InterestEndDate
	}
	if in.TargetAmount != nil {
		a.TargetAmount = in.TargetAmount
	}
	if in.TargetDate != nil {
		a.TargetDate = in.TargetDate
	}
	if in.Color != nil {
		a.Color = strings.TrimSpace(*in.Color)
	}
}

// NewCategory builds and validates a category; every field is required.
func (in CategoryInput) NewCategory(userID string) (Category, error) {
	c := Category{UserID: userID}
	in.ApplyTo(&c)
	err := c.Validate()
	if in.Budget == nil {
		ve, _ := err.(*ValidationError)
		if ve == nil {
			ve = &ValidationError{}
		}
		ve.Add("budget", "is required")
		return c, ve
	}
	return c, err
}

// ApplyTo copies the present fields. The running spend is never taken from input.
func (in CategoryInput) ApplyTo(c *Category) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Color != nil {
		c.Color = strings.TrimSpace(*in.Color)
	}
	if in.Budget != nil {
		c.Budget = *in.Budget
	}
}

func (in TransactionInput) ApplyTo(t *Transaction) {
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if in.Type != nil {
		t.Type = TransactionType(strings.ToUpper(string(*in.Type)))
	}
	if in.AccountID != nil {
		t.AccountID = strings.TrimSpace(*in.AccountID)
	}
	if in.CategoryID != nil {
		t.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
}
