package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.AccountOpeningRequest) (commons.Response[models.AccountOpeningResponse], error)
}

type LedgerService interface {
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	CloseAccount(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.CloseAccountResponse], error)
	ListTransactions(ctx context.Context, accountID string, limit int) (commons.Response[[]models.TransactionResponse], error)
}

type AccountController struct {
	accountService AccountService
	ledgerService  LedgerService
}

func NewAccountController(accountService AccountService, ledgerService LedgerService) *AccountController {
	return &AccountController{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /accounts", wrap(c.open))
	mux.Handle("GET /accounts/{id}", wrap(c.get))
	mux.Handle("POST /accounts/{id}/close", wrap(c.close))
	mux.Handle("GET /accounts/{id}/transactions", wrap(c.listTransactions))
}

func (c *AccountController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AccountOpeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountOpeningResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.accountService.OpenAccount(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.ledgerService.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) close(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	req := models.CloseAccountRequest{
		AccountID:  r.PathValue("id"),
		ActingUser: actingUser(r),
	}
	response, err := c.ledgerService.CloseAccount(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response := commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "limit must be a non-negative integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		limit = parsed
	}

	response, err := c.ledgerService.ListTransactions(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
