package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"screenerscraper/app"
)

// HandleGetStockData implements the get_stock_data tool.
func HandleGetStockData(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stockName, err := request.RequireString("stock_name")
		if err != nil || stockName == "" {
			return errorResult("stock_name parameter is required"), nil
		}

		result, err := svc.GetStockData(ctx, stockName)
		if err != nil {
			log.Error().Str("stock", stockName).Err(err).Msg("get_stock_data failed")
			return errorResult(err.Error()), nil
		}

		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(payload)),
			},
		}, nil
	}
}

// HandleFetchLivePrice implements the fetch_live_price tool.
func HandleFetchLivePrice(svc *app.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("ticker parameter is required"), nil
		}

		price, err := svc.FetchLivePrice(ctx, ticker)
		if err != nil {
			log.Error().Str("ticker", ticker).Err(err).Msg("fetch_live_price failed")
			return errorResult(err.Error()), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(price),
			},
		}, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent("Error: " + msg),
		},
	}
}
