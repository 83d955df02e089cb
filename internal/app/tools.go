package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the Shyft server version and status. Use this to verify connectivity."),
	)
}

// createSearchCompanyTool returns the search_company tool definition
func createSearchCompanyTool() mcp.Tool {
	return mcp.NewTool("search_company",
		mcp.WithDescription("Find SEC registrants whose name contains the given text. Returns every matching ticker; pick one and call get_financials."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Company name or part of it (e.g., 'Apple', 'Google')"),
		),
	)
}

// createResolveTickerTool returns the resolve_ticker tool definition
func createResolveTickerTool() mcp.Tool {
	return mcp.NewTool("resolve_ticker",
		mcp.WithDescription("Resolve an exact ticker symbol to its SEC CIK identifier."),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g., 'AAPL')"),
		),
	)
}

// createGetFinancialsTool returns the get_financials tool definition
func createGetFinancialsTool() mcp.Tool {
	return mcp.NewTool("get_financials",
		mcp.WithDescription("Annual revenue and net income from 10-K filings, by year, scaled to billions or trillions of USD. Provide either ticker or cik."),
		mcp.WithString("ticker",
			mcp.Description("Ticker symbol (e.g., 'AAPL')"),
		),
		mcp.WithString("cik",
			mcp.Description("SEC CIK, with or without the CIK prefix (e.g., '320193', 'CIK0000320193')"),
		),
	)
}
