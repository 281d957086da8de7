package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/account"
	"github.com/homeledger/homeledger/internal/domain/budget"
	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
	"github.com/homeledger/homeledger/internal/domain/tag"
	"github.com/homeledger/homeledger/internal/domain/transfer"
	"github.com/homeledger/homeledger/internal/platform/messaging/producers"
)

// fakeTxRunner runs the transactional function directly. When failWith
// is set the function is not invoked, mimicking a session that could
// not start.
type fakeTxRunner struct {
	failWith error
	calls    int
}

func (f *fakeTxRunner) ExecuteTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.failWith != nil {
		return f.failWith
	}
	return fn(ctx)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*account.Account, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, ownerID string) ([]*account.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

var _ account.Repository = (*MockAccountRepository)(nil)

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, entry *transfer.Transfer) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransferRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*transfer.Transfer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) List(ctx context.Context, ownerID string, accountID *primitive.ObjectID, limit, offset int) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, ownerID, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Count(ctx context.Context, ownerID string, accountID *primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ownerID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

var _ transfer.Repository = (*MockTransferRepository)(nil)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*category.Category, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, ownerID, name string) (*category.Category, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, ownerID string) ([]*category.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

var _ category.Repository = (*MockCategoryRepository)(nil)

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, t *tag.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepository) GetByID(ctx context.Context, ownerID string, id primitive.ObjectID) (*tag.Tag, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tag.Tag), args.Error(1)
}

func (m *MockTagRepository) GetByName(ctx context.Context, ownerID, name string) (*tag.Tag, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tag.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, ownerID string) ([]*tag.Tag, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tag.Tag), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

var _ tag.Repository = (*MockTagRepository)(nil)

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepository) List(ctx context.Context, ownerID string, q expense.Query) ([]*expense.Expense, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Summarize(ctx context.Context, ownerID string, q expense.Query) (*expense.Summary, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Summary), args.Error(1)
}

func (m *MockExpenseRepository) TotalsByCategory(ctx context.Context, ownerID string, q expense.Query) ([]expense.CategoryTotal, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]expense.CategoryTotal), args.Error(1)
}

func (m *MockExpenseRepository) TotalsByDate(ctx context.Context, ownerID string, q expense.Query) ([]expense.DateTotal, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]expense.DateTotal), args.Error(1)
}

func (m *MockExpenseRepository) TotalsByTag(ctx context.Context, ownerID string, q expense.Query) ([]expense.TagTotal, error) {
	args := m.Called(ctx, ownerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]expense.TagTotal), args.Error(1)
}

func (m *MockExpenseRepository) SumForMonth(ctx context.Context, ownerID string, year int, month time.Month) (int64, error) {
	args := m.Called(ctx, ownerID, year, month)
	return args.Get(0).(int64), args.Error(1)
}

var _ expense.Repository = (*MockExpenseRepository)(nil)

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Get(ctx context.Context, ownerID string, year, month int) (*budget.Budget, error) {
	args := m.Called(ctx, ownerID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

var _ budget.Repository = (*MockBudgetRepository)(nil)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, event producers.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ producers.EventPublisher = (*MockEventPublisher)(nil)

type MockBudgetWatcher struct {
	mock.Mock
}

func (m *MockBudgetWatcher) ExpenseRecorded(ownerID string, date time.Time) {
	m.Called(ownerID, date)
}

var _ BudgetWatcher = (*MockBudgetWatcher)(nil)
