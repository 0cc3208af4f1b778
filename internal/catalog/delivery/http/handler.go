package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/usecase/command"
	"github.com/belledame/storefront/internal/catalog/usecase/query"
	"github.com/belledame/storefront/pkg/logger"
)

// CatalogHandler exposes the catalog over HTTP using the CQRS handlers.
type CatalogHandler struct {
	upsertHandler *command.UpsertProductHandler
	seedHandler   *command.SeedCatalogHandler
	patchHandler  *command.PatchProductHandler
	deleteHandler *command.DeleteProductHandler

	listPublicHandler *query.ListPublicHandler
	listAdminHandler  *query.ListAdminHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a catalog handler with manual DI.
func NewCatalogHandler(reg prometheus.Registerer, repo domain.ProductRepository) *CatalogHandler {
	return newCatalogHandler(
		reg,
		command.NewUpsertProductHandler(repo),
		command.NewSeedCatalogHandler(repo),
		command.NewPatchProductHandler(repo),
		command.NewDeleteProductHandler(repo),
		query.NewListPublicHandler(repo),
		query.NewListAdminHandler(repo),
		repo,
	)
}

// NewCatalogHandlerWithDI is the constructor used by Wire.
func NewCatalogHandlerWithDI(
	reg prometheus.Registerer,
	upsertHandler *command.UpsertProductHandler,
	seedHandler *command.SeedCatalogHandler,
	patchHandler *command.PatchProductHandler,
	deleteHandler *command.DeleteProductHandler,
	listPublicHandler *query.ListPublicHandler,
	listAdminHandler *query.ListAdminHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	return newCatalogHandler(
		reg,
		upsertHandler, seedHandler, patchHandler, deleteHandler,
		listPublicHandler, listAdminHandler,
		repo,
	)
}

func newCatalogHandler(
	reg prometheus.Registerer,
	upsertHandler *command.UpsertProductHandler,
	seedHandler *command.SeedCatalogHandler,
	patchHandler *command.PatchProductHandler,
	deleteHandler *command.DeleteProductHandler,
	listPublicHandler *query.ListPublicHandler,
	listAdminHandler *query.ListAdminHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the store, inactive included",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, totalProducts)

	return &CatalogHandler{
		upsertHandler:     upsertHandler,
		seedHandler:       seedHandler,
		patchHandler:      patchHandler,
		deleteHandler:     deleteHandler,
		listPublicHandler: listPublicHandler,
		listAdminHandler:  listAdminHandler,
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		totalProducts:     totalProducts,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the public and PIN-gated admin routes.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, adminPIN string) {
	admin := RequireAdmin(adminPIN)

	router.HandleFunc("/api/health", h.metricsMiddleware("/api/health", h.Health)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")

	router.HandleFunc("/api/admin/products", h.metricsMiddleware("/api/admin/products", admin(h.ListAdminProducts))).Methods("GET")
	router.HandleFunc("/api/admin/products", h.metricsMiddleware("/api/admin/products", admin(h.UpsertProduct))).Methods("POST")
	router.HandleFunc("/api/admin/seed", h.metricsMiddleware("/api/admin/seed", admin(h.SeedCatalog))).Methods("POST")
	router.HandleFunc("/api/admin/products/{id}", h.metricsMiddleware("/api/admin/products/{id}", admin(h.PatchProduct))).Methods("PATCH")
	router.HandleFunc("/api/admin/products/{id}", h.metricsMiddleware("/api/admin/products/{id}", admin(h.DeleteProduct))).Methods("DELETE")
}

// Health handles GET /api/health
func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listPublicHandler.Handle(r.Context(), query.ListPublicQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// ListAdminProducts handles GET /api/admin/products
func (h *CatalogHandler) ListAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listAdminHandler.Handle(r.Context(), query.ListAdminQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list admin products")
		respondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// UpsertProduct handles POST /api/admin/products
func (h *CatalogHandler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.upsertHandler.Handle(r.Context(), command.UpsertProductCommand{Input: input})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Message)
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to upsert product")
		respondError(w, http.StatusInternalServerError, "Failed to upsert product")
		return
	}

	h.updateProductsMetric(r)
	respondJSON(w, http.StatusOK, product)
}

// SeedCatalog handles POST /api/admin/seed
func (h *CatalogHandler) SeedCatalog(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Products []domain.ProductInput `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Products == nil {
		respondError(w, http.StatusBadRequest, "Provide {products:[...]}")
		return
	}

	count, err := h.seedHandler.Handle(r.Context(), command.SeedCatalogCommand{Inputs: body.Products})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to seed catalog")
		respondError(w, http.StatusInternalServerError, "Failed to seed catalog")
		return
	}

	h.updateProductsMetric(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "count": count})
}

// PatchProduct handles PATCH /api/admin/products/{id}
func (h *CatalogHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.patchHandler.Handle(r.Context(), command.PatchProductCommand{ID: id, Patch: patch})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}
		logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to patch product")
		respondError(w, http.StatusInternalServerError, "Failed to patch product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to delete product")
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *CatalogHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context())
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
