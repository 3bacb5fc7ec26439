package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"temple-backend/internal/handlers"
	"temple-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	groupHandler *handlers.GroupHandler,
	ledgerHandler *handlers.LedgerHandler,
	acYearHandler *handlers.AcYearHandler,
	entryHandler *handlers.EntryHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	mutate := authMiddleware.RequireRole("admin", "accountant")

	// Groups - the account hierarchy
	groupsAPI := r.PathPrefix("/api/groups").Subrouter()
	groupsAPI.Use(authMiddleware.Authenticate)
	groupsAPI.HandleFunc("", groupHandler.ListGroups).Methods("GET")
	groupsAPI.HandleFunc("", mutate(http.HandlerFunc(groupHandler.CreateGroup)).ServeHTTP).Methods("POST")
	groupsAPI.HandleFunc("/tree", groupHandler.GetTree).Methods("GET")
	groupsAPI.HandleFunc("/{id}", groupHandler.GetGroup).Methods("GET")
	groupsAPI.HandleFunc("/{id}", mutate(http.HandlerFunc(groupHandler.UpdateGroup)).ServeHTTP).Methods("PUT")
	groupsAPI.HandleFunc("/{id}", mutate(http.HandlerFunc(groupHandler.DeleteGroup)).ServeHTTP).Methods("DELETE")

	// Ledgers
	ledgersAPI := r.PathPrefix("/api/ledgers").Subrouter()
	ledgersAPI.Use(authMiddleware.Authenticate)
	ledgersAPI.HandleFunc("", ledgerHandler.ListLedgers).Methods("GET")
	ledgersAPI.HandleFunc("", mutate(http.HandlerFunc(ledgerHandler.CreateLedger)).ServeHTTP).Methods("POST")
	ledgersAPI.HandleFunc("/{id}", ledgerHandler.GetLedger).Methods("GET")
	ledgersAPI.HandleFunc("/{id}", mutate(http.HandlerFunc(ledgerHandler.UpdateLedger)).ServeHTTP).Methods("PUT")
	ledgersAPI.HandleFunc("/{id}", mutate(http.HandlerFunc(ledgerHandler.DeleteLedger)).ServeHTTP).Methods("DELETE")

	// Accounting years (admin only for mutations)
	adminOnly := authMiddleware.RequireRole("admin")
	yearsAPI := r.PathPrefix("/api/ac-years").Subrouter()
	yearsAPI.Use(authMiddleware.Authenticate)
	yearsAPI.HandleFunc("", acYearHandler.ListYears).Methods("GET")
	yearsAPI.HandleFunc("", adminOnly(http.HandlerFunc(acYearHandler.CreateYear)).ServeHTTP).Methods("POST")
	yearsAPI.HandleFunc("/active", acYearHandler.GetActive).Methods("GET")
	yearsAPI.HandleFunc("/{id}/activate", adminOnly(http.HandlerFunc(acYearHandler.ActivateYear)).ServeHTTP).Methods("POST")

	// Journal entries
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.Use(authMiddleware.Authenticate)
	entriesAPI.HandleFunc("", entryHandler.ListEntries).Methods("GET")
	entriesAPI.HandleFunc("", mutate(http.HandlerFunc(entryHandler.CreateEntry)).ServeHTTP).Methods("POST")
	entriesAPI.HandleFunc("/{id}", entryHandler.GetEntry).Methods("GET")

	// Reports (any authenticated user)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/trial-balance", reportHandler.TrialBalance).Methods("GET")
	reportsAPI.HandleFunc("/balance-sheet", reportHandler.BalanceSheet).Methods("GET")
	reportsAPI.HandleFunc("/general-ledger", reportHandler.GeneralLedger).Methods("GET")
	reportsAPI.HandleFunc("/summary", reportHandler.Summary).Methods("GET")

	return r
}
