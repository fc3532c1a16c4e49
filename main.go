package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/Jasith06/jlink-pos-web/cart"
	"github.com/Jasith06/jlink-pos-web/db"
	"github.com/Jasith06/jlink-pos-web/mailer"
	"github.com/Jasith06/jlink-pos-web/products"
	"github.com/Jasith06/jlink-pos-web/ratelim"
	"github.com/Jasith06/jlink-pos-web/rdx"
	"github.com/Jasith06/jlink-pos-web/routes"
	"github.com/Jasith06/jlink-pos-web/sales"
	"github.com/Jasith06/jlink-pos-web/scanner"
	"github.com/Jasith06/jlink-pos-web/scanqueue"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(queue *scanqueue.Queue, catalog *products.Catalog, finalizer *sales.Finalizer, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	carts := cart.NewRegistry()

	routes.AddScannerRoutes(router, scanner.NewHandler(queue), rateLimiter)
	routes.AddCartRoutes(router, cart.NewHandler(carts, catalog, queue))
	routes.AddProductRoutes(router, products.NewHandler(catalog))
	routes.AddSalesRoutes(router, sales.NewHandler(finalizer, carts))

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	// scan queue backend: memory (default), file, or redis
	backend := os.Getenv("SCAN_QUEUE_BACKEND")
	if backend == "redis" {
		if err := rdx.Init(ctx); err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
	}
	store, err := scanqueue.OpenStore(backend, os.Getenv("SCAN_QUEUE_FILE"))
	if err != nil {
		log.Fatalf("scan queue init failed: %v", err)
	}
	queue := scanqueue.New(store)

	mailCfg, err := mailer.LoadConfig()
	if err != nil {
		log.Fatalf("mail config: %v", err)
	}

	catalog := products.NewCatalog(db.ProductsCollection)
	saleStore := sales.NewMongoStore(db.SalesCollection, db.MobileSalesCollection)
	finalizer := sales.NewFinalizer(saleStore, catalog, mailer.New(mailCfg))

	rateLimiter := ratelim.NewRateLimiter()
	router := setupRouter(queue, catalog, finalizer, rateLimiter)

	// apply middleware: CORS -> security headers -> logging -> router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("POS server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}

	log.Println("Server stopped cleanly")
}
