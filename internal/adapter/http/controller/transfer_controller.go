package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/commons"
)

type TransferService interface {
	Validate(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferValidationResponse], error)
	Process(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /transfers/validate", wrap(c.validate))
	mux.Handle("POST /transfers", wrap(c.process))
}

func (c *TransferController) validate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferValidationResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Validate(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) process(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Process(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
