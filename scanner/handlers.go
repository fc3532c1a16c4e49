// Package scanner exposes the HTTP surface the QR scanner devices and the
// POS client speak: POST to enqueue a scan, GET to drain pending scans,
// DELETE to reset the queue.
package scanner

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Jasith06/jlink-pos-web/scanqueue"
	"github.com/Jasith06/jlink-pos-web/utils"
)

type Handler struct {
	Queue *scanqueue.Queue
}

func NewHandler(q *scanqueue.Queue) *Handler {
	return &Handler{Queue: q}
}

type ingestRequest struct {
	Payload   string `json:"payload"`
	QRCode    string `json:"qr_code"` // legacy field name from scanner firmware
	DeviceID  string `json:"deviceId"`
	ScannerID string `json:"scanner_id"` // legacy
	Timestamp int64  `json:"timestamp"`
}

// Ingest handles POST /api/scanner.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("scanner ingest decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	payload := req.Payload
	if payload == "" {
		payload = req.QRCode
	}
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = req.ScannerID
	}

	rec, err := h.Queue.Ingest(r.Context(), payload, deviceID, req.Timestamp)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"id":            rec.ID,
		"extractedCode": rec.ProductCode,
		"deviceId":      rec.DeviceID,
		"receivedAt":    rec.ReceivedAt,
	})
}

// Poll handles GET /api/scanner. Returned scans are marked processed and
// will not appear in a later poll.
func (h *Handler) Poll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scans, err := h.Queue.Poll(r.Context())
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	if scans == nil {
		scans = []scanqueue.ScanRecord{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"scans": scans,
		"count": len(scans),
	})
}

// Clear handles DELETE /api/scanner.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.Queue.Clear(r.Context()); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cleared": true})
}

// Preflight handles OPTIONS /api/scanner for scanner firmware that probes
// before posting.
func (h *Handler) Preflight(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

// Ping handles GET /api/scanner/ping, a connectivity check for devices.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status": "ok",
		"time":   time.Now().UnixMilli(),
	})
}
