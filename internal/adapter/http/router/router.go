package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type TransactionRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type TransferRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type ApprovalRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type CustomerRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	accountController AccountRouteRegistrar,
	transactionController TransactionRouteRegistrar,
	transferController TransferRouteRegistrar,
	approvalController ApprovalRouteRegistrar,
	customerController CustomerRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if transactionController != nil {
		transactionController.RegisterRoutes(mux, authMiddleware)
	}
	if transferController != nil {
		transferController.RegisterRoutes(mux, authMiddleware)
	}
	if approvalController != nil {
		approvalController.RegisterRoutes(mux, authMiddleware)
	}
	if customerController != nil {
		customerController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
