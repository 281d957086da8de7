package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/account"
	"github.com/homeledger/homeledger/internal/domain/transfer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLedgerServiceImpl_Transfer(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("Success", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		tx := &fakeTxRunner{}
		svc := NewLedgerService(testLogger(), tx, mockAccounts, mockTransfers, nil)

		from := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Checking", Kind: account.KindBank, Balance: 10000, Status: account.StatusActive}
		to := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Savings", Kind: account.KindBank, Balance: 0, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, from.ID).Return(from, nil).Once()
		mockAccounts.On("GetByID", ctx, ownerID, to.ID).Return(to, nil).Once()
		mockAccounts.On("Update", ctx, from).Return(nil).Once()
		mockAccounts.On("Update", ctx, to).Return(nil).Once()

		var entry *transfer.Transfer
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*transfer.Transfer) }).
			Return(nil).Once()

		err := svc.Transfer(ctx, ownerID, from.ID, to.ID, 3000, "savings top-up")

		assert.NoError(t, err)
		assert.Equal(t, int64(7000), from.Balance)
		assert.Equal(t, int64(3000), to.Balance)
		// Total across both accounts is unchanged
		assert.Equal(t, int64(10000), from.Balance+to.Balance)
		assert.Equal(t, 1, tx.calls)

		assert.NotNil(t, entry)
		assert.Equal(t, from.ID, *entry.FromAccount)
		assert.Equal(t, to.ID, *entry.ToAccount)
		assert.Equal(t, int64(3000), entry.Amount)
		assert.Equal(t, "savings top-up", entry.Remark)

		mockAccounts.AssertExpectations(t)
		mockTransfers.AssertExpectations(t)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		from := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 2000, Status: account.StatusActive}
		toID := primitive.NewObjectID()

		mockAccounts.On("GetByID", ctx, ownerID, from.ID).Return(from, nil).Once()

		err := svc.Transfer(ctx, ownerID, from.ID, toID, 5000, "")

		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, int64(2000), from.Balance)
		mockAccounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockTransfers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("SequentialTransfers", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		a := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 10000, Status: account.StatusActive}
		b := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 0, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, a.ID).Return(a, nil)
		mockAccounts.On("GetByID", ctx, ownerID, b.ID).Return(b, nil)
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*account.Account")).Return(nil)
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).Return(nil)

		assert.NoError(t, svc.Transfer(ctx, ownerID, a.ID, b.ID, 3000, ""))
		assert.Equal(t, int64(7000), a.Balance)
		assert.Equal(t, int64(3000), b.Balance)

		// A second transfer larger than what remains must fail and leave
		// both balances as they were
		err := svc.Transfer(ctx, ownerID, a.ID, b.ID, 10000, "")
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, int64(7000), a.Balance)
		assert.Equal(t, int64(3000), b.Balance)
	})

	t.Run("SameAccount", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		tx := &fakeTxRunner{}
		svc := NewLedgerService(testLogger(), tx, mockAccounts, mockTransfers, nil)

		id := primitive.NewObjectID()
		err := svc.Transfer(ctx, ownerID, id, id, 1000, "")

		assert.ErrorIs(t, err, account.ErrSameAccount)
		assert.Equal(t, 0, tx.calls)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		tx := &fakeTxRunner{}
		svc := NewLedgerService(testLogger(), tx, mockAccounts, mockTransfers, nil)

		err := svc.Transfer(ctx, ownerID, primitive.NewObjectID(), primitive.NewObjectID(), 0, "")
		assert.ErrorIs(t, err, account.ErrInvalidAmount)

		err = svc.Transfer(ctx, ownerID, primitive.NewObjectID(), primitive.NewObjectID(), -500, "")
		assert.ErrorIs(t, err, account.ErrInvalidAmount)

		assert.Equal(t, 0, tx.calls)
	})

	t.Run("SourceNotFound", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		fromID := primitive.NewObjectID()
		toID := primitive.NewObjectID()
		mockAccounts.On("GetByID", ctx, ownerID, fromID).Return(nil, account.ErrAccountNotFound{AccountID: fromID}).Once()

		err := svc.Transfer(ctx, ownerID, fromID, toID, 1000, "")

		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "source account", notFound.Role)
		assert.Equal(t, fromID, notFound.AccountID)
	})

	t.Run("DestinationNotFound", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		from := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 5000, Status: account.StatusActive}
		toID := primitive.NewObjectID()

		mockAccounts.On("GetByID", ctx, ownerID, from.ID).Return(from, nil).Once()
		mockAccounts.On("GetByID", ctx, ownerID, toID).Return(nil, account.ErrAccountNotFound{AccountID: toID}).Once()

		err := svc.Transfer(ctx, ownerID, from.ID, toID, 1000, "")

		var notFound account.ErrAccountNotFound
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "destination account", notFound.Role)
		mockTransfers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("LedgerWriteFailureAbortsTransfer", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, mockEvents)

		from := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 5000, Status: account.StatusActive}
		to := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 0, Status: account.StatusActive}
		storeErr := errors.New("write conflict")

		mockAccounts.On("GetByID", ctx, ownerID, from.ID).Return(from, nil).Once()
		mockAccounts.On("GetByID", ctx, ownerID, to.ID).Return(to, nil).Once()
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*account.Account")).Return(nil)
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).Return(storeErr).Once()

		err := svc.Transfer(ctx, ownerID, from.ID, to.ID, 1000, "")

		assert.ErrorIs(t, err, storeErr)
		// No event fires for a failed transfer
		mockEvents.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
	})

	t.Run("EventFailureDoesNotFailTransfer", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, mockEvents)

		from := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 5000, Status: account.StatusActive}
		to := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 0, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, from.ID).Return(from, nil).Once()
		mockAccounts.On("GetByID", ctx, ownerID, to.ID).Return(to, nil).Once()
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*account.Account")).Return(nil)
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).Return(nil).Once()
		mockEvents.On("PublishEvent", ctx, mock.AnythingOfType("producers.Event")).Return(errors.New("broker down")).Once()

		err := svc.Transfer(ctx, ownerID, from.ID, to.ID, 1000, "")

		assert.NoError(t, err)
		mockEvents.AssertExpectations(t)
	})
}

func TestLedgerServiceImpl_AdjustBalance(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("ZeroAmountRejected", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		tx := &fakeTxRunner{}
		svc := NewLedgerService(testLogger(), tx, mockAccounts, mockTransfers, nil)

		acc, err := svc.AdjustBalance(ctx, ownerID, primitive.NewObjectID(), 0, "")

		assert.ErrorIs(t, err, account.ErrZeroAdjustment)
		assert.Nil(t, acc)
		assert.Equal(t, 0, tx.calls)
	})

	t.Run("PositiveAdjustment", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		acc := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 1000, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, acc.ID).Return(acc, nil).Once()
		mockAccounts.On("Update", ctx, acc).Return(nil).Once()

		var entry *transfer.Transfer
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*transfer.Transfer) }).
			Return(nil).Once()

		adjusted, err := svc.AdjustBalance(ctx, ownerID, acc.ID, 500, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(1500), adjusted.Balance)

		// Positive adjustment reads as an external credit into the account
		assert.NotNil(t, entry)
		assert.Nil(t, entry.FromAccount)
		assert.Equal(t, acc.ID, *entry.ToAccount)
		assert.Equal(t, int64(500), entry.Amount)
		assert.Equal(t, transfer.RemarkBalanceIncrease, entry.Remark)
	})

	t.Run("NegativeAdjustment", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		acc := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Balance: 1000, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, acc.ID).Return(acc, nil).Once()
		mockAccounts.On("Update", ctx, acc).Return(nil).Once()

		var entry *transfer.Transfer
		mockTransfers.On("Create", ctx, mock.AnythingOfType("*transfer.Transfer")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*transfer.Transfer) }).
			Return(nil).Once()

		adjusted, err := svc.AdjustBalance(ctx, ownerID, acc.ID, -300, "bank fee correction")

		assert.NoError(t, err)
		assert.Equal(t, int64(700), adjusted.Balance)

		// Negative adjustment reads as an external debit out of the account
		assert.NotNil(t, entry)
		assert.Nil(t, entry.ToAccount)
		assert.Equal(t, acc.ID, *entry.FromAccount)
		assert.Equal(t, int64(300), entry.Amount)
		assert.Equal(t, "bank fee correction", entry.Remark)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		id := primitive.NewObjectID()
		mockAccounts.On("GetByID", ctx, ownerID, id).Return(nil, account.ErrAccountNotFound{AccountID: id}).Once()

		acc, err := svc.AdjustBalance(ctx, ownerID, id, 500, "")

		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
		assert.Nil(t, acc)
		mockTransfers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLedgerServiceImpl_ListTransfers(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("Pagination", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		entries := []*transfer.Transfer{{ID: primitive.NewObjectID(), Amount: 100}}
		mockTransfers.On("List", ctx, ownerID, (*primitive.ObjectID)(nil), 10, 20).Return(entries, nil).Once()
		mockTransfers.On("Count", ctx, ownerID, (*primitive.ObjectID)(nil)).Return(int64(21), nil).Once()

		got, total, err := svc.ListTransfers(ctx, ownerID, nil, 3, 10)

		assert.NoError(t, err)
		assert.Equal(t, entries, got)
		assert.Equal(t, int64(21), total)
		mockTransfers.AssertExpectations(t)
	})

	t.Run("FilteredByAccount", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTransfers := new(MockTransferRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, mockTransfers, nil)

		accountID := primitive.NewObjectID()
		mockTransfers.On("List", ctx, ownerID, &accountID, 20, 0).Return([]*transfer.Transfer{}, nil).Once()
		mockTransfers.On("Count", ctx, ownerID, &accountID).Return(int64(0), nil).Once()

		got, total, err := svc.ListTransfers(ctx, ownerID, &accountID, 1, 20)

		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, int64(0), total)
	})
}

func TestLedgerServiceImpl_CreateAccount(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("Success", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, new(MockTransferRepository), nil)

		mockAccounts.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil).Once()

		acc, err := svc.CreateAccount(ctx, ownerID, "Wallet", account.KindCash, 2500, "")

		assert.NoError(t, err)
		assert.Equal(t, "Wallet", acc.Name)
		assert.Equal(t, int64(2500), acc.Balance)
		// Status defaults to active when omitted
		assert.Equal(t, account.StatusActive, acc.Status)
		assert.Equal(t, ownerID, acc.OwnerID)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("InvalidKind", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, new(MockTransferRepository), nil)

		_, err := svc.CreateAccount(ctx, ownerID, "Wallet", "crypto", 0, "")

		assert.ErrorIs(t, err, account.ErrInvalidKind)
		mockAccounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLedgerServiceImpl_UpdateAccount(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"

	t.Run("BalanceUntouchedByFieldUpdate", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		svc := NewLedgerService(testLogger(), &fakeTxRunner{}, mockAccounts, new(MockTransferRepository), nil)

		acc := &account.Account{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: "Old", Kind: account.KindCash, Balance: 4200, Status: account.StatusActive}

		mockAccounts.On("GetByID", ctx, ownerID, acc.ID).Return(acc, nil).Once()
		mockAccounts.On("Update", ctx, acc).Return(nil).Once()

		name := "New name"
		status := account.StatusInactive
		updated, err := svc.UpdateAccount(ctx, ownerID, acc.ID, account.Update{Name: &name, Status: &status})

		assert.NoError(t, err)
		assert.Equal(t, "New name", updated.Name)
		assert.Equal(t, account.StatusInactive, updated.Status)
		assert.Equal(t, int64(4200), updated.Balance)
	})
}
