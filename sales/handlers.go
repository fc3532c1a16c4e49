package sales

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jasith06/jlink-pos-web/cart"
	"github.com/Jasith06/jlink-pos-web/utils"
)

type Handler struct {
	Finalizer *Finalizer
	Carts     *cart.Registry
}

func NewHandler(f *Finalizer, carts *cart.Registry) *Handler {
	return &Handler{Finalizer: f, Carts: carts}
}

// Checkout handles POST /api/sales: finalize the operator's cart. The cart
// is cleared only when the sale record was persisted.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		CustomerEmail string `json:"customerEmail"`
		CustomerName  string `json:"customerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("checkout decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	m := h.Carts.Get(userID)
	result, err := h.Finalizer.ProcessSale(r.Context(), m.Summary(), req.CustomerEmail, req.CustomerName)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	m.ClearCart()
	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// List handles GET /api/sales?timeframe=today|week|month|year|all.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := h.Finalizer.ListSales(r.Context(), r.URL.Query().Get("timeframe"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sales": records,
		"count": len(records),
	})
}

// Analytics handles GET /api/analytics?timeframe=...
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.Finalizer.GetAnalytics(r.Context(), r.URL.Query().Get("timeframe"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// Receipt handles GET /api/receipts/:saleId, serving the PDF copy.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	saleID := ps.ByName("saleId")
	sale, err := h.Finalizer.Store.FindByID(r.Context(), saleID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Sale not found")
			return
		}
		log.Println("receipt lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load sale")
		return
	}

	pdfBytes, err := ReceiptPDF(sale)
	if err != nil {
		log.Println("receipt render error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+saleID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
