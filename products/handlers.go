package products

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/Jasith06/jlink-pos-web/utils"
)

type Handler struct {
	Catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{Catalog: c}
}

// Get handles GET /api/products/:code.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.Catalog.FindByCode(r.Context(), ps.ByName("code"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// Label handles GET /api/products/:code/label, serving the printable QR
// label PNG. Optional ?size= pixels.
func (h *Handler) Label(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.Catalog.FindByCode(r.Context(), ps.ByName("code"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := LabelPNG(p, size)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not render label")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
