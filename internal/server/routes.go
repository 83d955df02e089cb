package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// registerRoutes sets up all REST API routes on the router.
func (s *Server) registerRoutes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		// System
		r.Get("/health", s.handleHealth)
		r.Head("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)

		// Resolution
		r.Get("/companies/search", s.handleCompanySearch)
		r.Get("/tickers/{ticker}", s.handleResolveTicker)

		// Financials
		r.Get("/tickers/{ticker}/financials", s.handleTickerFinancials)
		r.Get("/financials/{identifier}", s.handleFinancials)
		r.Get("/financials/{identifier}/chart.png", s.handleFinancialsChart)
	})
}
