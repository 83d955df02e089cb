package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/models"
	"github.com/bobmcallan/shyft/internal/services/report"
)

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, common.GetBuildInfo())
}

// handleCompanySearch handles GET /api/companies/search?name=
func (s *Server) handleCompanySearch(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "name query parameter is required", "invalid_input")
		return
	}

	tickers, err := s.app.LookupService.SearchCompany(r.Context(), name)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   name,
		"tickers": tickers,
	})
}

// handleResolveTicker handles GET /api/tickers/{ticker}
func (s *Server) handleResolveTicker(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	identifier, err := s.app.LookupService.ResolveTicker(r.Context(), ticker)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"ticker":     ticker,
		"identifier": identifier,
	})
}

// handleTickerFinancials handles GET /api/tickers/{ticker}/financials
func (s *Server) handleTickerFinancials(w http.ResponseWriter, r *http.Request) {
	rep, err := s.app.LookupService.GetFinancialsByTicker(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeReport(w, r, rep)
}

// handleFinancials handles GET /api/financials/{identifier}
func (s *Server) handleFinancials(w http.ResponseWriter, r *http.Request) {
	rep, err := s.app.LookupService.GetFinancials(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	writeReport(w, r, rep)
}

// handleFinancialsChart handles GET /api/financials/{identifier}/chart.png
func (s *Server) handleFinancialsChart(w http.ResponseWriter, r *http.Request) {
	rep, err := s.app.LookupService.GetFinancials(r.Context(), chi.URLParam(r, "identifier"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	png, err := report.RenderChart(rep.Series)
	if err != nil {
		s.logger.Error().Err(err).Str("identifier", rep.Identifier).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// writeReport writes JSON, or the markdown table when ?format=markdown.
func writeReport(w http.ResponseWriter, r *http.Request, rep *models.FinancialsReport) {
	if strings.EqualFold(r.URL.Query().Get("format"), "markdown") {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(report.FormatMarkdown(rep)))
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}
