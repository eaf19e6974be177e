package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandrine-beauty/kika-shop/internal/dashboard"
	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
	"github.com/sandrine-beauty/kika-shop/internal/service"
	"github.com/sandrine-beauty/kika-shop/internal/validate"
	"github.com/sandrine-beauty/kika-shop/internal/whatsapp"
)

// OrderStore defines the read methods needed by order handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
}

// OrderMutator covers the write paths, which go through the service so
// snapshots, status rules and change notifications apply.
// Satisfied by *service.OrderService.
type OrderMutator interface {
	Create(ctx context.Context, req service.CreateOrderRequest) (database.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (database.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderHandler handles the order intake and admin order endpoints.
type OrderHandler struct {
	store          OrderStore
	orders         OrderMutator
	whatsappNumber string
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore, orders OrderMutator, whatsappNumber string) *OrderHandler {
	return &OrderHandler{store: store, orders: orders, whatsappNumber: whatsappNumber}
}

// --- Request / Response types ---

type createOrderRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	CustomerNotes   string `json:"customer_notes"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID                  uuid.UUID `json:"id"`
	CustomerName        string    `json:"customer_name"`
	CustomerPhone       string    `json:"customer_phone"`
	CustomerAddress     string    `json:"customer_address"`
	CustomerNotes       *string   `json:"customer_notes"`
	Status              string    `json:"status"`
	StatusLabel         string    `json:"status_label"`
	ProductName         string    `json:"product_name"`
	ProductPrice        string    `json:"product_price"`
	CustomerWhatsAppURL string    `json:"customer_whatsapp_url"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type createOrderResponse struct {
	Order       orderResponse `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		CustomerAddress:     o.CustomerAddress,
		Status:              o.Status,
		StatusLabel:         enum.StatusLabel(o.Status),
		ProductName:         o.ProductName,
		ProductPrice:        database.NumericToDecimal(o.ProductPrice).StringFixed(2),
		CustomerWhatsAppURL: whatsapp.CustomerURL(o.CustomerPhone),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.CustomerNotes.Valid {
		resp.CustomerNotes = &o.CustomerNotes.String
	}
	return resp
}

// --- Handlers ---

// Create stores a new order from the public intake form and returns the
// wa.me handoff link the storefront redirects to.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	input, errs := validate.Order(validate.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerNotes:   req.CustomerNotes,
	})
	if errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	order, err := h.orders.Create(r.Context(), service.CreateOrderRequest{
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		CustomerNotes:   input.CustomerNotes,
	})
	if err != nil {
		log.Printf("ERROR: create order: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondCreated(w, createOrderResponse{
		Order:       toOrderResponse(order),
		WhatsAppURL: whatsapp.OrderURL(h.whatsappNumber, order),
	}, "تم تسجيل طلبك بنجاح! سنتواصل معك قريباً 💕")
}

// List returns orders for the dashboard, newest first, optionally narrowed
// by ?search= and ?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !validStatusFilter(status) {
		respondError(w, http.StatusBadRequest, "حالة الطلب غير صحيحة")
		return
	}

	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	filtered := dashboard.Filter(orders, r.URL.Query().Get("search"), status)
	resp := make([]orderResponse, len(filtered))
	for i, o := range filtered {
		resp[i] = toOrderResponse(o)
	}
	respondData(w, http.StatusOK, resp)
}

// Get returns a single order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidOrderID)
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, msgOrderNotFound)
			return
		}
		log.Printf("ERROR: get order: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondData(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus moves an order to a new status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidOrderID)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "حالة الطلب غير صحيحة")
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, msgOrderNotFound)
		case errors.Is(err, service.ErrOrderBusy):
			respondError(w, http.StatusConflict, "جاري تنفيذ عملية أخرى على هذا الطلب")
		default:
			log.Printf("ERROR: update order status: %v", err)
			respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	respondMessage(w, toOrderResponse(order), "تم تحديث حالة الطلب بنجاح")
}

// Delete permanently removes an order. The request must carry
// ?confirm=true; without it nothing is deleted.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidOrderID)
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusBadRequest, "يجب تأكيد حذف الطلب")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, msgOrderNotFound)
		case errors.Is(err, service.ErrOrderBusy):
			respondError(w, http.StatusConflict, "جاري تنفيذ عملية أخرى على هذا الطلب")
		default:
			log.Printf("ERROR: delete order: %v", err)
			respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	respondMessage(w, nil, "تم حذف الطلب بنجاح")
}

// Stats returns the aggregate payload behind the dashboard cards and charts.
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: order stats: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondData(w, http.StatusOK, dashboard.ComputeStats(orders, time.Now()))
}

// Export streams the (optionally filtered) orders as a CSV attachment.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !validStatusFilter(status) {
		respondError(w, http.StatusBadRequest, "حالة الطلب غير صحيحة")
		return
	}

	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: export orders: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	filtered := dashboard.Filter(orders, r.URL.Query().Get("search"), status)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+dashboard.ExportFilename(time.Now())+`"`)
	if err := dashboard.ExportCSV(w, filtered); err != nil {
		// Headers are already out; nothing to do but log.
		log.Printf("ERROR: write csv: %v", err)
	}
}

func validStatusFilter(status string) bool {
	return status == "" || status == enum.StatusFilterAll || enum.IsValidOrderStatus(status)
}
