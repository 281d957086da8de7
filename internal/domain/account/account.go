package account

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind classifies an account for display purposes only; it carries no
// structural meaning beyond validation of the recognized values.
type Kind string

const (
	KindCash   Kind = "cash"
	KindBank   Kind = "bank"
	KindCredit Kind = "credit"
	KindOther  Kind = "other"
)

// Status is the account lifecycle flag. There are no transition rules;
// toggling is a plain field update.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Common errors
var (
	ErrEmptyName         = errors.New("account name cannot be empty")
	ErrInvalidKind       = errors.New("account type must be one of cash, bank, credit, other")
	ErrInvalidStatus     = errors.New("account status must be active or inactive")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrZeroAdjustment    = errors.New("adjustment amount cannot be zero")
	ErrSameAccount       = errors.New("source and destination accounts must differ")
	ErrInsufficientFunds = errors.New("insufficient funds in source account")
)

// Account represents a household money account. Balance is a cached
// projection of the transfer ledger and must only change through the
// transfer/adjustment paths, never through a plain field update.
type Account struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID   string             `json:"-" bson:"owner_id"`
	Name      string             `json:"name" bson:"name"`
	Kind      Kind               `json:"type" bson:"kind"`
	Balance   int64              `json:"balance" bson:"balance"` // Stored in cents/minor units
	Status    Status             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewAccount creates a new account with the given parameters
func NewAccount(ownerID, name string, kind Kind, initialBalance int64, status Status) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	now := time.Now()
	return &Account{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      name,
		Kind:      kind,
		Balance:   initialBalance,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Valid reports whether k is a recognized account kind
func (k Kind) Valid() bool {
	switch k {
	case KindCash, KindBank, KindCredit, KindOther:
		return true
	}
	return false
}

// Valid reports whether s is a recognized lifecycle status
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Deposit adds the specified amount to the account balance
func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	a.Balance += amount
	a.UpdatedAt = time.Now()
	return nil
}

// Withdraw subtracts the specified amount from the account balance
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if a.Balance < amount {
		return ErrInsufficientFunds
	}

	a.Balance -= amount
	a.UpdatedAt = time.Now()
	return nil
}

// Adjust applies a signed out-of-band balance change (reconciliation,
// opening balance correction). Zero is rejected; it would produce a
// vacuous ledger entry.
func (a *Account) Adjust(amount int64) error {
	if amount == 0 {
		return ErrZeroAdjustment
	}

	a.Balance += amount
	a.UpdatedAt = time.Now()
	return nil
}

// Update is the partial-field merge used by the registry. Balance is
// deliberately not part of it.
type Update struct {
	Name   *string
	Kind   *Kind
	Status *Status
}

// Apply merges the provided fields into the account and re-validates
func (a *Account) Apply(u Update) error {
	if u.Name != nil {
		if *u.Name == "" {
			return ErrEmptyName
		}
		a.Name = *u.Name
	}
	if u.Kind != nil {
		if !u.Kind.Valid() {
			return ErrInvalidKind
		}
		a.Kind = *u.Kind
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return ErrInvalidStatus
		}
		a.Status = *u.Status
	}
	a.UpdatedAt = time.Now()
	return nil
}
