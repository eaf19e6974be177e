package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandrine-beauty/kika-shop/internal/database"
)

// mockProductStore is a map-backed ProductStore.
type mockProductStore struct {
	products map[uuid.UUID]database.Product
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[uuid.UUID]database.Product)}
}

func (m *mockProductStore) ListProducts(ctx context.Context, activeOnly bool) ([]database.Product, error) {
	var out []database.Product
	for _, p := range m.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductStore) GetProduct(ctx context.Context, id uuid.UUID) (database.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return database.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProductStore) CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error) {
	p := database.Product{
		ID:                uuid.New(),
		Name:              arg.Name,
		Description:       arg.Description,
		Price:             arg.Price,
		ImageURL:          arg.ImageURL,
		Benefits:          arg.Benefits,
		UsageInstructions: arg.UsageInstructions,
		IsActive:          arg.IsActive,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error) {
	p, ok := m.products[arg.ID]
	if !ok {
		return database.Product{}, pgx.ErrNoRows
	}
	p.Name = arg.Name
	p.Description = arg.Description
	p.Price = arg.Price
	p.ImageURL = arg.ImageURL
	p.Benefits = arg.Benefits
	p.UsageInstructions = arg.UsageInstructions
	p.IsActive = arg.IsActive
	p.UpdatedAt = time.Now()
	m.products[arg.ID] = p
	return p, nil
}

func (m *mockProductStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.products, id)
	return nil
}

func seedProduct(store *mockProductStore, name string, active bool) database.Product {
	p, _ := store.CreateProduct(context.Background(), database.CreateProductParams{
		Name:     name,
		Price:    makeNumeric("350.00"),
		IsActive: active,
	})
	return p
}

func validProductBody() map[string]any {
	return map[string]any{
		"name":        "سيروم كيكه",
		"description": "سيروم طبيعي للعناية بالبشرة",
		"price":       "350.00",
		"image_url":   "https://example.com/serum.jpg",
		"benefits": []map[string]string{
			{"title": "ترطيب عميق", "description": "يرطب البشرة", "icon": "droplet"},
		},
		"usage_instructions": "يوضع مرتين يومياً",
	}
}

// --- Tests ---

func TestListProducts_ActiveFilter(t *testing.T) {
	store := newMockProductStore()
	seedProduct(store, "منتج نشط", true)
	seedProduct(store, "منتج موقوف", false)
	h := NewProductHandler(store)

	rr := doRequest(t, h.List, http.MethodGet, "/api/products?active=true", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	var data []struct {
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}
	decodeData(t, rr, &data)
	if len(data) != 1 || data[0].Name != "منتج نشط" {
		t.Errorf("expected only the active product, got %+v", data)
	}

	rr = doRequest(t, h.List, http.MethodGet, "/api/products", nil, nil)
	decodeData(t, rr, &data)
	if len(data) != 2 {
		t.Errorf("expected both products without the filter, got %d", len(data))
	}
}

func TestCreateProduct_Success(t *testing.T) {
	store := newMockProductStore()
	h := NewProductHandler(store)

	rr := doRequest(t, h.Create, http.MethodPost, "/api/products", validProductBody(), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d\nbody: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var data struct {
		Name     string `json:"name"`
		Price    string `json:"price"`
		IsActive bool   `json:"is_active"`
		Benefits []struct {
			Title string `json:"title"`
		} `json:"benefits"`
	}
	decodeData(t, rr, &data)
	if data.Price != "350.00" {
		t.Errorf("price: got %v, want 350.00", data.Price)
	}
	// is_active omitted defaults to true.
	if !data.IsActive {
		t.Error("expected is_active=true by default")
	}
	if len(data.Benefits) != 1 || data.Benefits[0].Title != "ترطيب عميق" {
		t.Errorf("benefits: got %+v", data.Benefits)
	}
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	h := NewProductHandler(newMockProductStore())

	body := validProductBody()
	body["price"] = "0"
	rr := doRequest(t, h.Create, http.MethodPost, "/api/products", body, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rr)
	if len(env.Errors) != 1 || env.Errors[0].Field != "price" {
		t.Errorf("expected one price error, got %+v", env.Errors)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	h := NewProductHandler(newMockProductStore())

	rr := doRequest(t, h.Update, http.MethodPut, "/api/products/x", validProductBody(),
		map[string]string{"id": uuid.NewString()})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateProduct_ExplicitInactive(t *testing.T) {
	store := newMockProductStore()
	p := seedProduct(store, "سيروم كيكه", true)
	h := NewProductHandler(store)

	body := validProductBody()
	body["is_active"] = false
	rr := doRequest(t, h.Update, http.MethodPut, "/api/products/"+p.ID.String(), body,
		map[string]string{"id": p.ID.String()})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var data struct {
		IsActive bool `json:"is_active"`
	}
	decodeData(t, rr, &data)
	if data.IsActive {
		t.Error("expected is_active=false")
	}
}

func TestDeleteProduct(t *testing.T) {
	store := newMockProductStore()
	p := seedProduct(store, "سيروم كيكه", true)
	h := NewProductHandler(store)

	rr := doRequest(t, h.Delete, http.MethodDelete, "/api/products/"+p.ID.String(), nil,
		map[string]string{"id": p.ID.String()})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if _, ok := store.products[p.ID]; ok {
		t.Error("product should be removed from the store")
	}

	rr = doRequest(t, h.Delete, http.MethodDelete, "/api/products/"+p.ID.String(), nil,
		map[string]string{"id": p.ID.String()})
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetProduct_BadID(t *testing.T) {
	h := NewProductHandler(newMockProductStore())

	rr := doRequest(t, h.Get, http.MethodGet, "/api/products/x", nil, map[string]string{"id": "nope"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
