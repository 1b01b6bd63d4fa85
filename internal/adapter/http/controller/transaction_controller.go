package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/commons"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawalRequest) (commons.Response[models.TransactionResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /transactions/deposit", wrap(c.deposit))
	mux.Handle("POST /transactions/withdrawal", wrap(c.withdraw))
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Deposit(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Withdraw(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
