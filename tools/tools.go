// Package tools defines the MCP surface: tool schemas and their handlers.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateGetStockDataTool returns the get_stock_data tool definition.
func CreateGetStockDataTool() mcp.Tool {
	return mcp.NewTool("get_stock_data",
		mcp.WithDescription("Fetch detailed stock data for a company and save it as a CSV, along with any concall transcripts"),
		mcp.WithString("stock_name",
			mcp.Required(),
			mcp.Description("Name of the stock to search for"),
		),
	)
}

// CreateFetchLivePriceTool returns the fetch_live_price tool definition.
func CreateFetchLivePriceTool() mcp.Tool {
	return mcp.NewTool("fetch_live_price",
		mcp.WithDescription("Resolve a ticker symbol to its current price"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol, uppercase letters and digits only (e.g. TCS)"),
		),
	)
}
