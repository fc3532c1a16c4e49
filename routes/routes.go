package routes

import (
	"github.com/julienschmidt/httprouter"

	"github.com/Jasith06/jlink-pos-web/cart"
	"github.com/Jasith06/jlink-pos-web/middleware"
	"github.com/Jasith06/jlink-pos-web/products"
	"github.com/Jasith06/jlink-pos-web/ratelim"
	"github.com/Jasith06/jlink-pos-web/sales"
	"github.com/Jasith06/jlink-pos-web/scanner"
)

// AddScannerRoutes wires the device-facing queue endpoints. These stay
// unauthenticated: scanner firmware carries no operator token. Ingestion
// is rate limited per device address instead.
func AddScannerRoutes(router *httprouter.Router, h *scanner.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/scanner", rl.Limit(h.Ingest))
	router.GET("/api/scanner", h.Poll)
	router.DELETE("/api/scanner", h.Clear)
	router.OPTIONS("/api/scanner", h.Preflight)
	router.GET("/api/scanner/ping", h.Ping)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.Get))
	router.POST("/api/cart/items", middleware.Authenticate(h.AddItem))
	router.PUT("/api/cart/items/:productId", middleware.Authenticate(h.UpdateItem))
	router.DELETE("/api/cart/items/:productId", middleware.Authenticate(h.RemoveItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.Clear))
	router.POST("/api/cart/cancel-last", middleware.Authenticate(h.CancelLast))
	router.POST("/api/cart/drain", middleware.Authenticate(h.Drain))
	router.DELETE("/api/cart/session", middleware.Authenticate(h.EndSession))
}

func AddProductRoutes(router *httprouter.Router, h *products.Handler) {
	router.GET("/api/products/:code", middleware.Authenticate(h.Get))
	router.GET("/api/products/:code/label", middleware.Authenticate(h.Label))
}

func AddSalesRoutes(router *httprouter.Router, h *sales.Handler) {
	router.POST("/api/sales", middleware.Authenticate(h.Checkout))
	router.GET("/api/sales", middleware.Authenticate(h.List))
	router.GET("/api/analytics", middleware.Authenticate(h.Analytics))
	router.GET("/api/receipts/:saleId", middleware.Authenticate(h.Receipt))
}
