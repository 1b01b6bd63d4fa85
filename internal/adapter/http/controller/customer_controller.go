package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/commons"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CustomerCreateRequest) (commons.Response[models.CustomerResponse], error)
	GetCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /customers", wrap(c.create))
	mux.Handle("GET /customers/{id}", wrap(c.get))
}

func (c *CustomerController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CustomerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.CreateCustomer(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *CustomerController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
