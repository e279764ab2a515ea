package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mfrancor/contalocal/internal/puc"
	"github.com/mfrancor/contalocal/internal/store"
)

// NewRouter assembles the full API surface over one store. The catalog is
// used to seed the chart of accounts for new companies and may be nil.
func NewRouter(st *store.Store, catalog *puc.Catalog, token string) chi.Router {
	companies := NewCompaniesHandler(st, catalog)
	accounts := NewAccountsHandler(st)
	banks := NewBankAccountsHandler(st)
	txns := NewTransactionsHandler(st)
	receivables := NewReceivablesHandler(st)
	payables := NewPayablesHandler(st)
	assets := NewAssetsHandler(st)
	reports := NewReportsHandler(st)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/1", func(r chi.Router) {
		r.Use(AuthMiddleware(token))

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", companies.List)
			r.Post("/", companies.Create)
			r.Get("/{id}", companies.Get)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accounts.List)
			r.Post("/", accounts.Create)
			r.Delete("/{id}", accounts.Delete)
		})

		r.Route("/bank_accounts", func(r chi.Router) {
			r.Get("/", banks.List)
			r.Post("/", banks.Create)
			r.Get("/{id}", banks.Get)
			r.Put("/{id}", banks.Update)
			r.Delete("/{id}", banks.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", txns.List)
			r.Post("/", txns.Create)
			r.Get("/{id}", txns.Get)
			r.Put("/{id}", txns.Update)
			r.Delete("/{id}", txns.Delete)
		})

		r.Post("/transfers", txns.CreateTransfer)

		r.Route("/receivables", func(r chi.Router) {
			r.Get("/", receivables.List)
			r.Post("/", receivables.Create)
			r.Post("/{id}/collect", receivables.Collect)
			r.Post("/{id}/payments", receivables.AddPayment)
		})

		r.Route("/payables", func(r chi.Router) {
			r.Get("/", payables.List)
			r.Post("/", payables.Create)
			r.Post("/{id}/pay", payables.Pay)
			r.Post("/{id}/payments", payables.AddPayment)
		})

		r.Route("/fixed_assets", func(r chi.Router) {
			r.Get("/", assets.ListFixedAssets)
			r.Post("/", assets.CreateFixedAsset)
			r.Put("/{id}/value", assets.UpdateFixedAssetValue)
			r.Delete("/{id}", assets.DeleteFixedAsset)
		})

		r.Route("/real_estate", func(r chi.Router) {
			r.Get("/", assets.ListRealEstate)
			r.Post("/", assets.CreateRealEstate)
			r.Delete("/{id}", assets.DeleteRealEstate)
		})

		r.Route("/initial_balances", func(r chi.Router) {
			r.Get("/", assets.ListInitialBalances)
			r.Put("/", assets.SetInitialBalance)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/ledger", reports.Ledger)
			r.Get("/journal", reports.Journal)
			r.Get("/income_statement", reports.IncomeStatement)
			r.Get("/balance_sheet", reports.BalanceSheet)
			r.Get("/categories", reports.Categories)
			r.Get("/summary", reports.Summary)
			r.Get("/full", reports.Full)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
