// Package transfer holds the append-only ledger entry written alongside
// every balance mutation. Entries are created exactly once, inside the
// same store transaction as the balance change they describe, and are
// never updated or deleted afterwards.
package transfer

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common errors
var (
	ErrInvalidAmount = errors.New("transfer amount must be positive")
	ErrNoAccounts    = errors.New("transfer must reference at least one account")
)

// Default remarks written by balance adjustments when the caller supplies none
const (
	RemarkBalanceIncrease = "balance increase"
	RemarkBalanceDecrease = "balance decrease"
)

// Transfer is one immutable ledger entry. A nil FromAccount encodes an
// external credit, a nil ToAccount an external debit; at least one side
// is always set.
type Transfer struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	OwnerID     string              `json:"-" bson:"owner_id"`
	FromAccount *primitive.ObjectID `json:"from_account" bson:"from_account,omitempty"`
	ToAccount   *primitive.ObjectID `json:"to_account" bson:"to_account,omitempty"`
	Amount      int64               `json:"amount" bson:"amount"` // Stored in cents/minor units
	Remark      string              `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}

// New creates a ledger entry for a cross-account transfer
func New(ownerID string, from, to primitive.ObjectID, amount int64, remark string) (*Transfer, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Transfer{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		FromAccount: &from,
		ToAccount:   &to,
		Amount:      amount,
		Remark:      remark,
		CreatedAt:   time.Now(),
	}, nil
}

// NewAdjustment creates a ledger entry for a single-account balance
// adjustment. A positive amount records an external credit into the
// account, a negative one an external debit out of it.
func NewAdjustment(ownerID string, accountID primitive.ObjectID, signedAmount int64, remark string) (*Transfer, error) {
	if signedAmount == 0 {
		return nil, ErrInvalidAmount
	}

	t := &Transfer{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	if signedAmount > 0 {
		t.ToAccount = &accountID
		t.Amount = signedAmount
		t.Remark = remark
		if t.Remark == "" {
			t.Remark = RemarkBalanceIncrease
		}
	} else {
		t.FromAccount = &accountID
		t.Amount = -signedAmount
		t.Remark = remark
		if t.Remark == "" {
			t.Remark = RemarkBalanceDecrease
		}
	}

	return t, nil
}

// Validate checks the entry invariants: positive amount and at least one
// referenced account.
func (t *Transfer) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.FromAccount == nil && t.ToAccount == nil {
		return ErrNoAccounts
	}
	return nil
}
