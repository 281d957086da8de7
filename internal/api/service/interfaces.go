package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/account"
	"github.com/homeledger/homeledger/internal/domain/budget"
	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
	"github.com/homeledger/homeledger/internal/domain/filter"
	"github.com/homeledger/homeledger/internal/domain/tag"
	"github.com/homeledger/homeledger/internal/domain/transfer"
)

// TxRunner executes the supplied function inside a store transaction.
// Every repository call made with the context passed to fn joins the
// transaction; the whole unit commits or aborts together.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BudgetWatcher is notified after an expense write so budget checks can
// run off the request path.
type BudgetWatcher interface {
	ExpenseRecorded(ownerID string, date time.Time)
}

// LedgerService owns account balance mutation, cross-account transfer,
// and the transfer-history ledger.
type LedgerService interface {
	// ListAccounts returns the owner's accounts, newest-created first
	ListAccounts(ctx context.Context, ownerID string) ([]*account.Account, error)

	// GetAccount returns one account
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccount(ctx context.Context, ownerID string, id primitive.ObjectID) (*account.Account, error)

	// CreateAccount validates and persists a new account
	CreateAccount(ctx context.Context, ownerID, name string, kind account.Kind, initialBalance int64, status account.Status) (*account.Account, error)

	// UpdateAccount merges the provided fields and persists. The balance
	// field is not updatable through this path.
	UpdateAccount(ctx context.Context, ownerID string, id primitive.ObjectID, upd account.Update) (*account.Account, error)

	// DeleteAccount removes the account without cascading to its transfers
	DeleteAccount(ctx context.Context, ownerID string, id primitive.ObjectID) error

	// Transfer moves amount between two distinct accounts and records one
	// immutable ledger entry, all-or-nothing. Preconditions (existence,
	// sufficient funds) are checked inside the transaction.
	Transfer(ctx context.Context, ownerID string, fromID, toID primitive.ObjectID, amount int64, remark string) error

	// AdjustBalance applies an out-of-band signed balance change plus its
	// audit ledger entry atomically. Zero amounts are rejected.
	AdjustBalance(ctx context.Context, ownerID string, id primitive.ObjectID, signedAmount int64, remark string) (*account.Account, error)

	// ListTransfers returns paginated ledger history, newest first,
	// optionally restricted to entries touching one account
	ListTransfers(ctx context.Context, ownerID string, accountID *primitive.ObjectID, page, perPage int) ([]*transfer.Transfer, int64, error)
}

// ExpenseService manages spending records
type ExpenseService interface {
	CreateExpense(ctx context.Context, ownerID string, date time.Time, categoryID primitive.ObjectID, amount int64, description string, tagIDs []primitive.ObjectID, isExtra bool) (*expense.Expense, error)
	ListExpenses(ctx context.Context, ownerID string, q expense.Query) ([]*expense.Expense, error)
	DeleteExpense(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// CategoryService manages expense/income categories
type CategoryService interface {
	ListCategories(ctx context.Context, ownerID string) ([]*category.Category, error)
	CreateCategory(ctx context.Context, ownerID, name string, kind category.Kind, icon, color string) (*category.Category, error)
	UpdateCategory(ctx context.Context, ownerID string, id primitive.ObjectID, name string, kind category.Kind, icon, color string) (*category.Category, error)
	DeleteCategory(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// TagService manages expense tags
type TagService interface {
	ListTags(ctx context.Context, ownerID string) ([]*tag.Tag, error)
	CreateTag(ctx context.Context, ownerID, name, color string) (*tag.Tag, error)
	DeleteTag(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// BudgetService manages monthly spending budgets
type BudgetService interface {
	// GetBudget returns the budget for (year, month); a zero-amount budget
	// when none has been set
	GetBudget(ctx context.Context, ownerID string, year, month int) (*budget.Budget, error)
	SetBudget(ctx context.Context, ownerID string, year, month int, amount int64) (*budget.Budget, error)
}

// FilterService manages saved expense searches
type FilterService interface {
	ListFilters(ctx context.Context, ownerID string) ([]*filter.Filter, error)
	CreateFilter(ctx context.Context, ownerID, name string, conditions filter.Conditions) (*filter.Filter, error)
	UpdateFilter(ctx context.Context, ownerID string, id primitive.ObjectID, name string, conditions filter.Conditions) (*filter.Filter, error)
	DeleteFilter(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

// CategoryReportRow is a per-category total with the resolved name
type CategoryReportRow struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Total      int64  `json:"total"`
}

// TagReportRow is a per-tag total with the resolved name
type TagReportRow struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// Report is the aggregated spending view over a date range
type Report struct {
	Total       int64               `json:"total"`
	ExtraTotal  int64               `json:"extra_total"`
	NormalTotal int64               `json:"normal_total"`
	Categories  []CategoryReportRow `json:"categories"`
	Days        []DayReportRow      `json:"days"`
	Tags        []TagReportRow      `json:"tags"`
}

// DayReportRow is a per-day total; Date is formatted YYYY-MM-DD
type DayReportRow struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// ReportService produces aggregated spending reports
type ReportService interface {
	GetReport(ctx context.Context, ownerID string, start, end time.Time) (*Report, error)
}

// AuthService is the authentication collaborator: it issues bearer
// tokens and resolves them back to an owner identity.
type AuthService interface {
	// Register creates a user and returns a signed token
	Register(ctx context.Context, username, password string) (string, error)
	// Login verifies credentials and returns a signed token
	Login(ctx context.Context, username, password string) (string, error)
	// Verify resolves a bearer token to the owner ID it was issued for
	Verify(token string) (string, error)
}
