package inventory

import (
	"encoding/csv"
	"net/http"

	"stockpilot/infrastructure/backend"
)

// ExportCSVHandler streams the detailed inventory listing as CSV.
func ExportCSVHandler(api *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := FetchFullInventory(r.Context(), api)
		if err != nil {
			http.Error(w, "failed to load inventory", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"lot_id", "id_individual", "caducidad", "product_name"})
		for _, item := range items {
			_ = cw.Write([]string{item.LotID, item.IndividualID, item.Expiry, item.ProductName})
		}
		cw.Flush()
	}
}
