package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
)

// mockSiteContentStore is a map-backed SiteContentStore and
// CredentialStore.
type mockSiteContentStore struct {
	entries map[string]database.SiteContent
}

func newMockSiteContentStore() *mockSiteContentStore {
	return &mockSiteContentStore{entries: make(map[string]database.SiteContent)}
}

func (m *mockSiteContentStore) GetSiteContent(ctx context.Context, key string) (database.SiteContent, error) {
	e, ok := m.entries[key]
	if !ok {
		return database.SiteContent{}, pgx.ErrNoRows
	}
	return e, nil
}

func (m *mockSiteContentStore) ListSiteContent(ctx context.Context) ([]database.SiteContent, error) {
	var out []database.SiteContent
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockSiteContentStore) UpsertSiteContent(ctx context.Context, arg database.UpsertSiteContentParams) (database.SiteContent, error) {
	e, ok := m.entries[arg.ContentKey]
	if !ok {
		e = database.SiteContent{ID: uuid.New(), ContentKey: arg.ContentKey}
	}
	e.ContentValue = arg.ContentValue
	e.ContentType = arg.ContentType
	e.UpdatedAt = time.Now()
	m.entries[arg.ContentKey] = e
	return e, nil
}

func (m *mockSiteContentStore) seed(key, value string) {
	m.entries[key] = database.SiteContent{
		ID:           uuid.New(),
		ContentKey:   key,
		ContentValue: value,
		ContentType:  enum.ContentTypeText,
		UpdatedAt:    time.Now(),
	}
}

// --- Tests ---

func TestGetSiteContent_Map(t *testing.T) {
	store := newMockSiteContentStore()
	store.seed(enum.ContentKeyBrandName, "سندرين بيوتي")
	store.seed(enum.ContentKeyTagline, "جمالك الطبيعي")
	store.seed(enum.ContentKeyAdminPasswordHash, "$2a$10$secret")
	h := NewSiteContentHandler(store)

	rr := doRequest(t, h.Get, http.MethodGet, "/api/site-content", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	var data map[string]string
	decodeData(t, rr, &data)
	if data[enum.ContentKeyBrandName] != "سندرين بيوتي" {
		t.Errorf("brand_name: got %v", data[enum.ContentKeyBrandName])
	}
	if _, ok := data[enum.ContentKeyAdminPasswordHash]; ok {
		t.Error("password hash must not appear in the public map")
	}
}

func TestGetSiteContent_SingleKey(t *testing.T) {
	store := newMockSiteContentStore()
	store.seed(enum.ContentKeyBrandName, "سندرين بيوتي")
	h := NewSiteContentHandler(store)

	rr := doRequest(t, h.Get, http.MethodGet, "/api/site-content?key=brand_name", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	var data struct {
		ContentKey   string `json:"content_key"`
		ContentValue string `json:"content_value"`
	}
	decodeData(t, rr, &data)
	if data.ContentValue != "سندرين بيوتي" {
		t.Errorf("content_value: got %v", data.ContentValue)
	}

	rr = doRequest(t, h.Get, http.MethodGet, "/api/site-content?key=missing", nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing key: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestGetSiteContent_PasswordHashKeyHidden(t *testing.T) {
	store := newMockSiteContentStore()
	store.seed(enum.ContentKeyAdminPasswordHash, "$2a$10$secret")
	h := NewSiteContentHandler(store)

	rr := doRequest(t, h.Get, http.MethodGet, "/api/site-content?key=admin_password_hash", nil, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpsertSiteContent(t *testing.T) {
	store := newMockSiteContentStore()
	h := NewSiteContentHandler(store)

	rr := doRequest(t, h.Upsert, http.MethodPost, "/api/site-content", map[string]string{
		"content_key":   "tagline",
		"content_value": "جمالك الطبيعي",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d\nbody: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var data struct {
		ContentType string `json:"content_type"`
	}
	decodeData(t, rr, &data)
	// Omitted content_type defaults to text.
	if data.ContentType != enum.ContentTypeText {
		t.Errorf("content_type: got %v, want text", data.ContentType)
	}

	// Same key again overwrites.
	rr = doRequest(t, h.Upsert, http.MethodPost, "/api/site-content", map[string]string{
		"content_key":   "tagline",
		"content_value": "نضارة تدوم",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("overwrite status: got %d", rr.Code)
	}
	if store.entries["tagline"].ContentValue != "نضارة تدوم" {
		t.Errorf("stored value: got %v", store.entries["tagline"].ContentValue)
	}
}

func TestUpsertSiteContent_ValidationErrors(t *testing.T) {
	h := NewSiteContentHandler(newMockSiteContentStore())

	rr := doRequest(t, h.Upsert, http.MethodPost, "/api/site-content", map[string]string{
		"content_value": "بدون مفتاح",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	env := decodeEnvelope(t, rr)
	if len(env.Errors) != 1 || env.Errors[0].Field != "content_key" {
		t.Errorf("expected one content_key error, got %+v", env.Errors)
	}
}

func TestUpsertSiteContent_ReservedKey(t *testing.T) {
	store := newMockSiteContentStore()
	h := NewSiteContentHandler(store)

	rr := doRequest(t, h.Upsert, http.MethodPost, "/api/site-content", map[string]string{
		"content_key":   enum.ContentKeyAdminPasswordHash,
		"content_value": "$2a$10$attacker",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if len(store.entries) != 0 {
		t.Error("reserved key must not be written")
	}
}
