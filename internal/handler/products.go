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
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/validate"
)

const msgProductNotFound = "المنتج غير موجود"

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]database.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductHandler handles product CRUD endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// --- Request / Response types ---

type benefitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type productRequest struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	ImageURL          string           `json:"image_url"`
	Benefits          []benefitRequest `json:"benefits"`
	UsageInstructions string           `json:"usage_instructions"`
	IsActive          *bool            `json:"is_active"`
}

type productResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Name              string                    `json:"name"`
	Description       *string                   `json:"description"`
	Price             string                    `json:"price"`
	ImageURL          *string                   `json:"image_url"`
	Benefits          []database.ProductBenefit `json:"benefits"`
	UsageInstructions *string                   `json:"usage_instructions"`
	IsActive          bool                      `json:"is_active"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

func toProductResponse(p database.Product) productResponse {
	resp := productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     database.NumericToDecimal(p.Price).StringFixed(2),
		Benefits:  p.Benefits,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if resp.Benefits == nil {
		resp.Benefits = []database.ProductBenefit{}
	}
	if p.Description.Valid {
		resp.Description = &p.Description.String
	}
	if p.ImageURL.Valid {
		resp.ImageURL = &p.ImageURL.String
	}
	if p.UsageInstructions.Valid {
		resp.UsageInstructions = &p.UsageInstructions.String
	}
	return resp
}

// validatedParams turns a request into store params after validation.
func (h *ProductHandler) validatedParams(req productRequest) (database.CreateProductParams, validate.FieldErrors) {
	benefits := make([]validate.BenefitInput, len(req.Benefits))
	for i, b := range req.Benefits {
		benefits[i] = validate.BenefitInput{Title: b.Title, Description: b.Description, Icon: b.Icon}
	}

	normalized, errs := validate.Product(validate.ProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          req.ImageURL,
		Benefits:          benefits,
		UsageInstructions: req.UsageInstructions,
		IsActive:          req.IsActive,
	})
	if errs != nil {
		return database.CreateProductParams{}, errs
	}

	desc := pgtype.Text{}
	if normalized.Description != "" {
		desc = pgtype.Text{String: normalized.Description, Valid: true}
	}
	imageURL := pgtype.Text{}
	if normalized.ImageURL != "" {
		imageURL = pgtype.Text{String: normalized.ImageURL, Valid: true}
	}
	usage := pgtype.Text{}
	if normalized.UsageInstructions != "" {
		usage = pgtype.Text{String: normalized.UsageInstructions, Valid: true}
	}
	storeBenefits := make([]database.ProductBenefit, len(normalized.Benefits))
	for i, b := range normalized.Benefits {
		storeBenefits[i] = database.ProductBenefit{Title: b.Title, Description: b.Description, Icon: b.Icon}
	}

	return database.CreateProductParams{
		Name:              normalized.Name,
		Description:       desc,
		Price:             database.DecimalToNumeric(normalized.Price),
		ImageURL:          imageURL,
		Benefits:          storeBenefits,
		UsageInstructions: usage,
		IsActive:          normalized.IsActive,
	}, nil
}

// --- Handlers ---

// List returns products, all of them or only active ones with ?active=true.
// The storefront always asks for active ones.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	products, err := h.store.ListProducts(r.Context(), activeOnly)
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	respondData(w, http.StatusOK, resp)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "معرف المنتج غير صحيح")
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Printf("ERROR: get product: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondData(w, http.StatusOK, toProductResponse(product))
}

// Create adds a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	params, errs := h.validatedParams(req)
	if errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	product, err := h.store.CreateProduct(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: create product: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondCreated(w, toProductResponse(product), "تم إضافة المنتج بنجاح")
}

// Update replaces an existing product. Orders keep the name/price snapshot
// taken when they were created.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "معرف المنتج غير صحيح")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	params, errs := h.validatedParams(req)
	if errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ID:                id,
		Name:              params.Name,
		Description:       params.Description,
		Price:             params.Price,
		ImageURL:          params.ImageURL,
		Benefits:          params.Benefits,
		UsageInstructions: params.UsageInstructions,
		IsActive:          params.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Printf("ERROR: update product: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondMessage(w, toProductResponse(product), "تم تحديث المنتج بنجاح")
}

// Delete permanently removes a product. Existing orders are untouched;
// they carry their own snapshots.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "معرف المنتج غير صحيح")
		return
	}

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondMessage(w, nil, "تم حذف المنتج بنجاح")
}
