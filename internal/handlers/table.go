package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rquansah/financialdashboard/internal/report"
)

type TableResponse struct {
	Symbol string       `json:"symbol"`
	Rows   report.Table `json:"rows"`
}

// TableHandler returns the normalized income statement as JSON.
func (controller *Controller) TableHandler(w http.ResponseWriter, r *http.Request) {
	symbol, table, err := controller.loadTable(r)
	if err != nil {
		controller.logger.Error("Failed to build table", "symbol", symbol, "error", err)
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TableResponse{
		Symbol: symbol,
		Rows:   table,
	})
}
