package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/shyft/internal/common"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/models"
	"github.com/bobmcallan/shyft/internal/services/report"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Shyft Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleSearchCompany implements the search_company tool
func handleSearchCompany(svc interfaces.LookupService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil || strings.TrimSpace(name) == "" {
			return errorResult("Error: name parameter is required"), nil
		}

		tickers, err := svc.SearchCompany(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("name", name).Msg("Company search failed")
			return errorResult(fmt.Sprintf("No matches found for '%s': %v", name, err)), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("# Matches for '%s'\n\n", strings.TrimSpace(name)))
		for _, t := range tickers {
			sb.WriteString(fmt.Sprintf("- %s\n", t))
		}
		return textResult(sb.String()), nil
	}
}

// handleResolveTicker implements the resolve_ticker tool
func handleResolveTicker(svc interfaces.LookupService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || strings.TrimSpace(ticker) == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		identifier, err := svc.ResolveTicker(ctx, ticker)
		if err != nil {
			logger.Warn().Err(err).Str("ticker", ticker).Msg("Ticker resolution failed")
			return errorResult(fmt.Sprintf("Failed to find CIK for ticker '%s': %v", ticker, err)), nil
		}
		return textResult(fmt.Sprintf("%s: %s", strings.ToUpper(strings.TrimSpace(ticker)), identifier)), nil
	}
}

// handleGetFinancials implements the get_financials tool
func handleGetFinancials(svc interfaces.LookupService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := strings.TrimSpace(request.GetString("ticker", ""))
		cik := strings.TrimSpace(request.GetString("cik", ""))

		var (
			rep *models.FinancialsReport
			err error
		)
		switch {
		case ticker != "":
			rep, err = svc.GetFinancialsByTicker(ctx, ticker)
		case cik != "":
			rep, err = svc.GetFinancials(ctx, cik)
		default:
			return errorResult("Error: ticker or cik parameter is required"), nil
		}
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Str("cik", cik).Msg("Financials lookup failed")
			return errorResult(fmt.Sprintf("Financials error: %v", err)), nil
		}

		return textResult(report.FormatMarkdown(rep)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
