// Package api exposes the operations over HTTP as an alternative to the MCP
// stdio surface.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"screenerscraper/app"
	"screenerscraper/screener"
	"screenerscraper/state"
	"screenerscraper/stock"
)

// NewRouter builds the HTTP routes with request logging and CORS.
func NewRouter(svc *app.Service) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/stock/{name}", StockDataHandler(svc)).Methods("GET")
	router.HandleFunc("/price/{ticker}", LivePriceHandler(svc)).Methods("GET")

	return handlers.LoggingHandler(os.Stderr, handlers.CORS()(router))
}

// StockDataHandler handles company extraction requests.
func StockDataHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		result, err := svc.GetStockData(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// LivePriceHandler handles ticker price lookups.
func LivePriceHandler(svc *app.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticker := mux.Vars(r)["ticker"]

		price, err := svc.FetchLivePrice(r.Context(), ticker)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"ticker": ticker, "price": price})
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var parseErr *state.ParseError

	switch {
	case errors.Is(err, screener.ErrEmptyName), errors.Is(err, stock.ErrInvalidTicker):
		status = http.StatusBadRequest
	case errors.Is(err, screener.ErrNoMatch), errors.Is(err, stock.ErrPriceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, state.ErrNotFound), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
