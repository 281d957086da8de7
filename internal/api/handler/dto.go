package handler

import (
	"github.com/homeledger/homeledger/internal/domain/filter"
)

// RegisterRequest represents a request to create a new user
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a signed bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=cash bank credit other"`
	Balance int64  `json:"balance"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateAccountRequest represents a partial account update. Absent
// fields are left unchanged; balance is not accepted here.
type UpdateAccountRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Type   *string `json:"type" binding:"omitempty,oneof=cash bank credit other"`
	Status *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Balance   int64  `json:"balance"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TransferRequest represents a request to move money between two accounts
type TransferRequest struct {
	FromAccount string `json:"from_account" binding:"required"`
	ToAccount   string `json:"to_account" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Remark      string `json:"remark" binding:"omitempty,max=200"`
}

// AdjustBalanceRequest represents a signed out-of-band balance change
type AdjustBalanceRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Remark string `json:"remark" binding:"omitempty,max=200"`
}

// TransferResponse represents a ledger entry in API responses. A null
// from_account means an external credit, a null to_account an external
// debit.
type TransferResponse struct {
	ID          string  `json:"id"`
	FromAccount *string `json:"from_account"`
	ToAccount   *string `json:"to_account"`
	Amount      int64   `json:"amount"`
	Remark      string  `json:"remark,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListTransfersParams represents query parameters for ledger history
type ListTransfersParams struct {
	Account string `form:"account"`
	Page    int    `form:"page,default=1" binding:"min=1"`
	PerPage int    `form:"per_page,default=20" binding:"min=1,max=100"`
}

// CreateExpenseRequest represents a request to record an expense.
// Date is formatted YYYY-MM-DD.
type CreateExpenseRequest struct {
	Date        string   `json:"date" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Amount      int64    `json:"amount" binding:"required,gt=0"`
	Description string   `json:"description" binding:"omitempty,max=200"`
	Tags        []string `json:"tags"`
	IsExtra     bool     `json:"is_extra"`
}

// ListExpensesParams represents query parameters for expense listings
type ListExpensesParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Category  string `form:"category"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Amount      int64    `json:"amount"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	IsExtra     bool     `json:"is_extra"`
	CreatedAt   string   `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// UpdateCategoryRequest represents a full category replacement
type UpdateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"created_at"`
}

// SetBudgetRequest represents a request to set the monthly budget
type SetBudgetRequest struct {
	Year   int   `json:"year" binding:"required,min=1970,max=3000"`
	Month  int   `json:"month" binding:"required,min=1,max=12"`
	Amount int64 `json:"amount" binding:"min=0"`
}

// GetBudgetParams represents query parameters for budget retrieval
type GetBudgetParams struct {
	Year  int `form:"year" binding:"required,min=1970,max=3000"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// BudgetResponse represents a monthly budget in API responses
type BudgetResponse struct {
	Year   int   `json:"year"`
	Month  int   `json:"month"`
	Amount int64 `json:"amount"`
}

// SaveFilterRequest represents a request to create or update a saved filter
type SaveFilterRequest struct {
	Name       string            `json:"name" binding:"required,max=50"`
	Conditions filter.Conditions `json:"conditions"`
}

// FilterResponse represents a saved filter in API responses
type FilterResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Conditions filter.Conditions `json:"conditions"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

// ReportParams represents query parameters for spending reports.
// Dates are formatted YYYY-MM-DD and the range is inclusive.
type ReportParams struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
