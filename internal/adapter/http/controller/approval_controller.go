package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/minibank-core/internal/adapter/http/models"
	"github.com/api-sage/minibank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/minibank-core/internal/commons"
	"github.com/api-sage/minibank-core/internal/domain"
)

type ApprovalService interface {
	Approve(ctx context.Context, req models.ApproveRequest) (commons.Response[models.ApprovalRequestResponse], error)
	Reject(ctx context.Context, req models.RejectRequest) (commons.Response[models.ApprovalRequestResponse], error)
	Get(ctx context.Context, requestID string) (commons.Response[models.ApprovalRequestResponse], error)
	ListPending(ctx context.Context, filter repo_interfaces.PendingApprovalFilter) (commons.Response[[]models.ApprovalRequestResponse], error)
	CountPending(ctx context.Context) (commons.Response[int64], error)
}

type ApprovalController struct {
	service ApprovalService
}

func NewApprovalController(service ApprovalService) *ApprovalController {
	return &ApprovalController{service: service}
}

func (c *ApprovalController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("GET /approvals", wrap(c.listPending))
	mux.Handle("GET /approvals/count", wrap(c.countPending))
	mux.Handle("GET /approvals/{id}", wrap(c.get))
	mux.Handle("POST /approvals/{id}/approve", wrap(c.approve))
	mux.Handle("POST /approvals/{id}/reject", wrap(c.reject))
}

func (c *ApprovalController) listPending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	filter := repo_interfaces.PendingApprovalFilter{
		BranchID:    r.URL.Query().Get("branchId"),
		RequestType: domain.RequestType(r.URL.Query().Get("requestType")),
	}
	response, err := c.service.ListPending(r.Context(), filter)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ApprovalController) countPending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.CountPending(r.Context())
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ApprovalController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ApprovalController) approve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ApprovalRequestResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.RequestID = r.PathValue("id")
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Approve(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *ApprovalController) reject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.ApprovalRequestResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	req.RequestID = r.PathValue("id")
	req.ActingUser = actingUser(r)
	logRequest(r, req)

	response, err := c.service.Reject(r.Context(), req)
	if err != nil {
		status := statusForFailure(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
