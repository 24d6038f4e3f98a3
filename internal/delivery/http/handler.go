package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Xausdorf/ledger-core/internal/domain/entity"
	"github.com/Xausdorf/ledger-core/internal/domain/repository"
	"github.com/Xausdorf/ledger-core/internal/usecase/account"
	"github.com/Xausdorf/ledger-core/internal/usecase/generateqr"
	"github.com/Xausdorf/ledger-core/internal/usecase/transfer"
)

const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	CodeAccountFromNotFound    = "ACCOUNT_FROM_NOT_FOUND"
	CodeAccountToNotFound      = "ACCOUNT_TO_NOT_FOUND"
	CodeDifferentCurrencies    = "DIFFERENT_ACCOUNT_CURRENCIES"
	CodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	CodeSameAccount            = "SAME_ACCOUNT"
	CodeBalanceOverflow        = "BALANCE_OVERFLOW"
	CodeHandlerNotFound        = "REQUEST_HANDLER_NOT_FOUND"
	CodeInternalServerError    = "INTERNAL_SERVER_ERROR"
	transferMessageOK          = "ok"
	transferMessageAlreadyDone = "already_processed"
)

type Handler struct {
	accountUC    *account.UseCase
	transferUC   *transfer.UseCase
	generateQRUC *generateqr.UseCase
	logger       *zap.Logger
}

func NewHandler(
	accountUC *account.UseCase,
	transferUC *transfer.UseCase,
	generateQRUC *generateqr.UseCase,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		accountUC:    accountUC,
		transferUC:   transferUC,
		generateQRUC: generateQRUC,
		logger:       logger,
	}
}

type ErrorMessage struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
}

type CreateAccountRequest struct {
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

type CreateAccountResponse struct {
	ID int32 `json:"id"`
}

type AccountResponse struct {
	ID               int32  `json:"id"`
	Currency         string `json:"currency"`
	Balance          int64  `json:"balance"`
	BalanceFormatted string `json:"balance_formatted"`
	Version          int64  `json:"version"`
}

type TransferRequest struct {
	AccountFrom int32 `json:"account_from"`
	AccountTo   int32 `json:"account_to"`
	Amount      int64 `json:"amount"`
	OperationID int32 `json:"operation_id"`
}

type TransferResponse struct {
	Message string `json:"message"`
}

type LegResponse struct {
	ID        string `json:"id"`
	AccountID int32  `json:"account_id"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type OperationResponse struct {
	OperationID int32         `json:"operation_id"`
	Legs        []LegResponse `json:"legs"`
}

func (h *Handler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, validationError("invalid json"))
		return
	}

	currency, ok := entity.ParseCurrency(req.Currency)
	if !ok {
		writeErrors(w, http.StatusBadRequest, validationError(fmt.Sprintf("Unsupported currency %q", req.Currency)))
		return
	}
	if req.Balance < 0 {
		writeErrors(w, http.StatusBadRequest, validationError("Balance must not be negative"))
		return
	}

	acc, err := h.accountUC.Create(r.Context(), currency, req.Balance)
	if err != nil {
		h.internalError(w, "create account failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateAccountResponse{ID: acc.ID()})
}

func (h *Handler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Account id must be a positive integer")
	if !ok {
		return
	}

	acc, err := h.accountUC.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, ErrorMessage{
			Code:   CodeAccountNotFound,
			Detail: fmt.Sprintf("Account by id=%d not found", id),
		})
		return
	}
	if err != nil {
		h.internalError(w, "get account failed", err)
		return
	}

	writeJSON(w, http.StatusOK, AccountResponse{
		ID:               acc.ID(),
		Currency:         acc.Currency().String(),
		Balance:          acc.Balance(),
		BalanceFormatted: acc.Currency().Format(acc.Balance()),
		Version:          acc.Version(),
	})
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, validationError("invalid json"))
		return
	}

	if errs := validateTransfer(req); len(errs) > 0 {
		writeErrors(w, http.StatusBadRequest, errs...)
		return
	}

	err := h.transferUC.Execute(r.Context(), transfer.Request{
		OperationID:   req.OperationID,
		FromAccountID: req.AccountFrom,
		ToAccountID:   req.AccountTo,
		Amount:        req.Amount,
	})
	if errors.Is(err, transfer.ErrTransferAlreadyProcessed) {
		writeJSON(w, http.StatusOK, TransferResponse{Message: transferMessageAlreadyDone})
		return
	}
	if err != nil {
		code, ok := transferErrorCode(err)
		if !ok {
			h.internalError(w, "transfer failed", err)
			return
		}
		writeErrors(w, http.StatusBadRequest, ErrorMessage{Code: code})
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{Message: transferMessageOK})
}

func (h *Handler) HandleOperation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "operation_id"), 10, 32)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, validationError("Operation id must be an integer"))
		return
	}
	operationID := int32(id)

	legs, err := h.transferUC.Legs(r.Context(), operationID)
	if err != nil {
		h.internalError(w, "list legs failed", err)
		return
	}

	resp := OperationResponse{OperationID: operationID, Legs: make([]LegResponse, 0, len(legs))}
	for _, leg := range legs {
		resp.Legs = append(resp.Legs, LegResponse{
			ID:        leg.ID().String(),
			AccountID: leg.AccountID(),
			Kind:      string(leg.Kind()),
			Amount:    leg.Amount(),
			CreatedAt: leg.CreatedAt().UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Account id must be a positive integer")
	if !ok {
		return
	}

	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeErrors(w, http.StatusBadRequest, validationError("Amount query param must be a positive integer"))
		return
	}

	png, err := h.generateQRUC.Execute(r.Context(), generateqr.Request{AccountID: id, Amount: amount})
	if errors.Is(err, repository.ErrNotFound) {
		writeErrors(w, http.StatusNotFound, ErrorMessage{
			Code:   CodeAccountNotFound,
			Detail: fmt.Sprintf("Account by id=%d not found", id),
		})
		return
	}
	if err != nil {
		h.internalError(w, "qr generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

func (h *Handler) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeErrors(w, http.StatusNotFound, ErrorMessage{Code: CodeHandlerNotFound})
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	writeErrors(w, http.StatusInternalServerError, ErrorMessage{Code: CodeInternalServerError})
}

func validateTransfer(req TransferRequest) []ErrorMessage {
	var errs []ErrorMessage
	if req.AccountFrom <= 0 {
		errs = append(errs, validationError("From account must be positive"))
	}
	if req.AccountTo <= 0 {
		errs = append(errs, validationError("To account must be positive"))
	}
	if req.Amount <= 0 {
		errs = append(errs, validationError("Amount to be transferred must be positive"))
	}
	return errs
}

func transferErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, transfer.ErrAccountFromNotFound):
		return CodeAccountFromNotFound, true
	case errors.Is(err, transfer.ErrAccountToNotFound):
		return CodeAccountToNotFound, true
	case errors.Is(err, transfer.ErrCurrencyMismatch):
		return CodeDifferentCurrencies, true
	case errors.Is(err, transfer.ErrInsufficientBalance):
		return CodeInsufficientBalance, true
	case errors.Is(err, transfer.ErrSameAccount):
		return CodeSameAccount, true
	case errors.Is(err, transfer.ErrBalanceOverflow):
		return CodeBalanceOverflow, true
	case errors.Is(err, entity.ErrInvalidArgument):
		return CodeValidationError, true
	default:
		return "", false
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param, detail string) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 32)
	if err != nil || id <= 0 {
		writeErrors(w, http.StatusBadRequest, validationError(detail))
		return 0, false
	}
	return int32(id), true
}

func validationError(detail string) ErrorMessage {
	return ErrorMessage{Code: CodeValidationError, Detail: detail}
}

func writeErrors(w http.ResponseWriter, status int, errs ...ErrorMessage) {
	writeJSON(w, status, ErrorResponse{Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
