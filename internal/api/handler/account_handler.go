package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/api/middleware"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/domain/account"
	"github.com/homeledger/homeledger/internal/domain/transfer"
)

// AccountHandler handles HTTP requests for accounts, transfers and
// balance adjustments
type AccountHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, ledgerService service.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// List returns all of the caller's accounts
func (h *AccountHandler) List(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), ownerID)
	if err != nil {
		h.logger.Error("Failed to list accounts", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		response = append(response, mapAccountToResponse(acc))
	}
	RespondOK(c, response)
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "account ID")
	if !ok {
		return
	}

	acc, err := h.ledgerService.GetAccount(c.Request.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "account_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Create handles creation of a new account
func (h *AccountHandler) Create(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.ledgerService.CreateAccount(c.Request.Context(), ownerID, req.Name, account.Kind(req.Type), req.Balance, account.Status(req.Status))
	if err != nil {
		if isAccountValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// Update merges the provided fields into the account. The balance is
// not updatable here; it only moves via transfers and adjustments.
func (h *AccountHandler) Update(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "account ID")
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	upd := account.Update{Name: req.Name}
	if req.Type != nil {
		kind := account.Kind(*req.Type)
		upd.Kind = &kind
	}
	if req.Status != nil {
		status := account.Status(*req.Status)
		upd.Status = &status
	}

	acc, err := h.ledgerService.UpdateAccount(c.Request.Context(), ownerID, id, upd)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		if isAccountValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update account", "account_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Delete removes an account. Ledger entries that reference it are kept.
func (h *AccountHandler) Delete(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "account ID")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteAccount(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to delete account", "account_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{"message": "Account deleted"})
}

// Transfer moves money between two of the caller's accounts. Every
// precondition failure, including a missing account, maps to 400: the
// transfer request itself is invalid, not the URL.
func (h *AccountHandler) Transfer(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	fromID, ok := parseObjectID(c, req.FromAccount, "source account ID")
	if !ok {
		return
	}
	toID, ok := parseObjectID(c, req.ToAccount, "destination account ID")
	if !ok {
		return
	}

	err := h.ledgerService.Transfer(c.Request.Context(), ownerID, fromID, toID, req.Amount, req.Remark)
	if err != nil {
		var notFound account.ErrAccountNotFound
		switch {
		case errors.As(err, &notFound):
			RespondBadRequest(c, notFound.Role+" not found")
		case errors.Is(err, account.ErrInsufficientFunds):
			h.logger.Warn("Transfer rejected for insufficient funds", "from_account", fromID.Hex(), "amount", req.Amount)
			RespondBadRequest(c, "Insufficient funds in source account")
		case isAccountValidationError(err):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to execute transfer", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, gin.H{"status": "completed"})
}

// Adjust applies a signed out-of-band balance change to one account
func (h *AccountHandler) Adjust(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	id, ok := parseObjectID(c, c.Param("id"), "account ID")
	if !ok {
		return
	}

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.ledgerService.AdjustBalance(c.Request.Context(), ownerID, id, req.Amount, req.Remark)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		if isAccountValidationError(err) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to adjust balance", "account_id", id.Hex(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// ListTransfers returns paginated ledger history, newest first
func (h *AccountHandler) ListTransfers(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var params ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	var accountID *primitive.ObjectID
	if params.Account != "" {
		id, ok := parseObjectID(c, params.Account, "account ID")
		if !ok {
			return
		}
		accountID = &id
	}

	entries, total, err := h.ledgerService.ListTransfers(c.Request.Context(), ownerID, accountID, params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list transfers", "error", err)
		RespondInternalError(c)
		return
	}

	response := make([]TransferResponse, 0, len(entries))
	for _, t := range entries {
		response = append(response, mapTransferToResponse(t))
	}
	RespondWithPaginatedData(c, 200, response, params.Page, params.PerPage, int(total))
}

// isAccountValidationError reports whether err is a caller mistake
// rather than a store failure
func isAccountValidationError(err error) bool {
	return errors.Is(err, account.ErrEmptyName) ||
		errors.Is(err, account.ErrInvalidKind) ||
		errors.Is(err, account.ErrInvalidStatus) ||
		errors.Is(err, account.ErrInvalidAmount) ||
		errors.Is(err, account.ErrZeroAdjustment) ||
		errors.Is(err, account.ErrSameAccount) ||
		errors.Is(err, account.ErrInsufficientFunds)
}

// parseObjectID parses a hex object ID, responding 400 on failure
func parseObjectID(c *gin.Context, raw, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		RespondBadRequest(c, "Invalid "+label)
		return primitive.NilObjectID, false
	}
	return id, true
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.Hex(),
		Name:      acc.Name,
		Type:      string(acc.Kind),
		Balance:   acc.Balance,
		Status:    string(acc.Status),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
}

// mapTransferToResponse maps a ledger entry to a transfer response DTO
func mapTransferToResponse(t *transfer.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:        t.ID.Hex(),
		Amount:    t.Amount,
		Remark:    t.Remark,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.FromAccount != nil {
		from := t.FromAccount.Hex()
		resp.FromAccount = &from
	}
	if t.ToAccount != nil {
		to := t.ToAccount.Hex()
		resp.ToAccount = &to
	}
	return resp
}
