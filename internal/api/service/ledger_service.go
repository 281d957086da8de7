package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/account"
	"github.com/homeledger/homeledger/internal/domain/transfer"
	"github.com/homeledger/homeledger/internal/platform/messaging/producers"
)

// LedgerServiceImpl implements the LedgerService interface. The stored
// balance is a cached projection of the transfer ledger, so every
// balance mutation and its ledger entry go through the TxRunner as one
// unit; nothing else in the system writes the balance field.
type LedgerServiceImpl struct {
	tx        TxRunner
	accounts  account.Repository
	transfers transfer.Repository
	events    producers.EventPublisher // nil when the event stream is disabled
	logger    *slog.Logger
}

// NewLedgerService creates a new ledger service. events may be nil.
func NewLedgerService(logger *slog.Logger, tx TxRunner, accounts account.Repository, transfers transfer.Repository, events producers.EventPublisher) LedgerService {
	return &LedgerServiceImpl{
		tx:        tx,
		accounts:  accounts,
		transfers: transfers,
		events:    events,
		logger:    logger,
	}
}

// ListAccounts returns the owner's accounts, newest-created first
func (s *LedgerServiceImpl) ListAccounts(ctx context.Context, ownerID string) ([]*account.Account, error) {
	return s.accounts.List(ctx, ownerID)
}

// GetAccount returns one account, or ErrAccountNotFound
func (s *LedgerServiceImpl) GetAccount(ctx context.Context, ownerID string, id primitive.ObjectID) (*account.Account, error) {
	return s.accounts.GetByID(ctx, ownerID, id)
}

// CreateAccount validates and persists a new account
func (s *LedgerServiceImpl) CreateAccount(ctx context.Context, ownerID, name string, kind account.Kind, initialBalance int64, status account.Status) (*account.Account, error) {
	acc, err := account.NewAccount(ownerID, name, kind, initialBalance, status)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// UpdateAccount merges the provided fields, re-validates, and persists
func (s *LedgerServiceImpl) UpdateAccount(ctx context.Context, ownerID string, id primitive.ObjectID, upd account.Update) (*account.Account, error) {
	acc, err := s.accounts.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := acc.Apply(upd); err != nil {
		return nil, err
	}

	if err := s.accounts.Update(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// DeleteAccount removes the account. Historical ledger entries that
// reference it are kept as-is.
func (s *LedgerServiceImpl) DeleteAccount(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	return s.accounts.Delete(ctx, ownerID, id)
}

// Transfer moves amount from one account to another. All preconditions
// are evaluated inside the transaction so a concurrent transfer cannot
// slip between the balance check and the write; the two balance updates
// and the ledger insert commit together or not at all.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, ownerID string, fromID, toID primitive.ObjectID, amount int64, remark string) error {
	if amount <= 0 {
		return account.ErrInvalidAmount
	}
	if fromID == toID {
		return account.ErrSameAccount
	}

	err := s.tx.ExecuteTx(ctx, func(txCtx context.Context) error {
		from, err := s.accounts.GetByID(txCtx, ownerID, fromID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				return account.ErrAccountNotFound{AccountID: fromID, Role: "source account"}
			}
			return err
		}

		if err := from.Withdraw(amount); err != nil {
			return err
		}

		to, err := s.accounts.GetByID(txCtx, ownerID, toID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				return account.ErrAccountNotFound{AccountID: toID, Role: "destination account"}
			}
			return err
		}

		if err := to.Deposit(amount); err != nil {
			return err
		}

		if err := s.accounts.Update(txCtx, from); err != nil {
			return err
		}
		if err := s.accounts.Update(txCtx, to); err != nil {
			return err
		}

		entry, err := transfer.New(ownerID, fromID, toID, amount, remark)
		if err != nil {
			return err
		}
		return s.transfers.Create(txCtx, entry)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, producers.Event{
		Type:    producers.EventTransferCompleted,
		OwnerID: ownerID,
		Payload: map[string]interface{}{
			"from_account": fromID.Hex(),
			"to_account":   toID.Hex(),
			"amount":       amount,
		},
	})

	return nil
}

// AdjustBalance applies an out-of-band signed balance change and writes
// the matching ledger entry in the same transaction: a crash between the
// two must not leave an un-audited balance change.
func (s *LedgerServiceImpl) AdjustBalance(ctx context.Context, ownerID string, id primitive.ObjectID, signedAmount int64, remark string) (*account.Account, error) {
	if signedAmount == 0 {
		return nil, account.ErrZeroAdjustment
	}

	var adjusted *account.Account
	err := s.tx.ExecuteTx(ctx, func(txCtx context.Context) error {
		acc, err := s.accounts.GetByID(txCtx, ownerID, id)
		if err != nil {
			return err
		}

		if err := acc.Adjust(signedAmount); err != nil {
			return err
		}

		if err := s.accounts.Update(txCtx, acc); err != nil {
			return err
		}

		entry, err := transfer.NewAdjustment(ownerID, id, signedAmount, remark)
		if err != nil {
			return err
		}
		if err := s.transfers.Create(txCtx, entry); err != nil {
			return err
		}

		adjusted = acc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, producers.Event{
		Type:    producers.EventBalanceAdjusted,
		OwnerID: ownerID,
		Payload: map[string]interface{}{
			"account": id.Hex(),
			"amount":  signedAmount,
		},
	})

	return adjusted, nil
}

// ListTransfers returns paginated ledger history, newest first
func (s *LedgerServiceImpl) ListTransfers(ctx context.Context, ownerID string, accountID *primitive.ObjectID, page, perPage int) ([]*transfer.Transfer, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.transfers.List(ctx, ownerID, accountID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transfers.Count(ctx, ownerID, accountID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// publish sends a ledger event after a successful commit. Failures are
// logged and swallowed: the event stream is advisory.
func (s *LedgerServiceImpl) publish(ctx context.Context, event producers.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish ledger event", "type", event.Type, "error", err)
	}
}
