package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Jasith06/jlink-pos-web/apperr"
	"github.com/Jasith06/jlink-pos-web/products"
	"github.com/Jasith06/jlink-pos-web/scanqueue"
	"github.com/Jasith06/jlink-pos-web/utils"
)

type Handler struct {
	Carts   *Registry
	Catalog *products.Catalog
	Queue   *scanqueue.Queue
}

func NewHandler(carts *Registry, catalog *products.Catalog, queue *scanqueue.Queue) *Handler {
	return &Handler{Carts: carts, Catalog: catalog, Queue: queue}
}

func (h *Handler) cartFor(r *http.Request) (*Manager, string) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, ""
	}
	return h.Carts.Get(userID), userID
}

// Get handles GET /api/cart.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":  m.Items(),
		"totals": m.GetTotals(),
		"profit": m.CalculateProfit(),
	})
}

// AddItem handles POST /api/cart/items: resolve a product code and merge
// it into the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Code     string `json:"code"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("cart add decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Code == "" {
		utils.RespondWithAppError(w, apperr.NewValidation("code", "product code is required"))
		return
	}

	p, err := h.Catalog.FindByCode(r.Context(), req.Code)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	items := m.AddItem(p, req.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"items":  items,
		"totals": m.GetTotals(),
	})
}

// UpdateItem handles PUT /api/cart/items/:productId.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	items := m.UpdateQuantity(ps.ByName("productId"), req.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":  items,
		"totals": m.GetTotals(),
	})
}

// RemoveItem handles DELETE /api/cart/items/:productId.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items := m.RemoveItem(ps.ByName("productId"))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":  items,
		"totals": m.GetTotals(),
	})
}

// Clear handles DELETE /api/cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	m.ClearCart()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cleared": true})
}

// CancelLast handles POST /api/cart/cancel-last.
func (h *Handler) CancelLast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	m.CancelLastItem()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":  m.Items(),
		"totals": m.GetTotals(),
	})
}

// EndSession handles DELETE /api/cart/session: the operator is signing
// out, so the cart is discarded entirely rather than emptied. Polling
// clients stop after calling this; a later sign-in starts from a fresh
// cart.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.Carts.Drop(userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ended": true})
}

type drainResult struct {
	ScanID      string `json:"scanId"`
	ProductCode string `json:"productCode"`
	Status      string `json:"status"` // "added" or "error"
	Error       string `json:"error,omitempty"`
}

// Drain handles POST /api/cart/drain: pull every pending scan off the
// queue and apply each to the cart in order. Scans are processed strictly
// one at a time; a failed lookup is reported per scan and never stops the
// rest of the batch.
func (h *Handler) Drain(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	m, _ := h.cartFor(r)
	if m == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scans, err := h.Queue.Poll(r.Context())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	results := make([]drainResult, 0, len(scans))
	for _, scan := range scans {
		res := drainResult{ScanID: scan.ID, ProductCode: scan.ProductCode}
		p, err := h.Catalog.FindByCode(r.Context(), scan.ProductCode)
		if err != nil {
			res.Status = "error"
			res.Error = apperr.Message(err)
			log.Printf("drain: scan %s (%s) failed: %v", scan.ID, scan.ProductCode, err)
		} else {
			m.AddItem(p, 1)
			res.Status = "added"
		}
		results = append(results, res)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"processed": len(scans),
		"results":   results,
		"items":     m.Items(),
		"totals":    m.GetTotals(),
	})
}
