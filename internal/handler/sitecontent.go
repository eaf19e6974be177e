package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
	"github.com/sandrine-beauty/kika-shop/internal/validate"
)

// SiteContentStore defines the database methods needed by site content
// handlers. Satisfied by *database.Queries.
type SiteContentStore interface {
	GetSiteContent(ctx context.Context, key string) (database.SiteContent, error)
	ListSiteContent(ctx context.Context) ([]database.SiteContent, error)
	UpsertSiteContent(ctx context.Context, arg database.UpsertSiteContentParams) (database.SiteContent, error)
}

// SiteContentHandler handles the editable site copy endpoints.
type SiteContentHandler struct {
	store SiteContentStore
}

// NewSiteContentHandler creates a new SiteContentHandler.
func NewSiteContentHandler(store SiteContentStore) *SiteContentHandler {
	return &SiteContentHandler{store: store}
}

// --- Request / Response types ---

type upsertContentRequest struct {
	ContentKey   string `json:"content_key"`
	ContentValue string `json:"content_value"`
	ContentType  string `json:"content_type"`
}

type siteContentResponse struct {
	ContentKey   string    `json:"content_key"`
	ContentValue string    `json:"content_value"`
	ContentType  string    `json:"content_type"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toSiteContentResponse(c database.SiteContent) siteContentResponse {
	return siteContentResponse{
		ContentKey:   c.ContentKey,
		ContentValue: c.ContentValue,
		ContentType:  c.ContentType,
		UpdatedAt:    c.UpdatedAt,
	}
}

// --- Handlers ---

// Get returns site content as a flat key/value map, or a single entry with
// ?key=. The admin password hash never leaves the server.
func (h *SiteContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if key := r.URL.Query().Get("key"); key != "" {
		if key == enum.ContentKeyAdminPasswordHash {
			respondError(w, http.StatusNotFound, "المحتوى غير موجود")
			return
		}
		entry, err := h.store.GetSiteContent(r.Context(), key)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				respondError(w, http.StatusNotFound, "المحتوى غير موجود")
				return
			}
			log.Printf("ERROR: get site content: %v", err)
			respondError(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		respondData(w, http.StatusOK, toSiteContentResponse(entry))
		return
	}

	entries, err := h.store.ListSiteContent(r.Context())
	if err != nil {
		log.Printf("ERROR: list site content: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	content := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.ContentKey == enum.ContentKeyAdminPasswordHash {
			continue
		}
		content[e.ContentKey] = e.ContentValue
	}
	respondData(w, http.StatusOK, content)
}

// Upsert creates or overwrites one content key.
func (h *SiteContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	input, errs := validate.SiteContent(validate.SiteContentInput{
		ContentKey:   req.ContentKey,
		ContentValue: req.ContentValue,
		ContentType:  req.ContentType,
	})
	if errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	// The password hash has its own endpoint with re-verification.
	if input.ContentKey == enum.ContentKeyAdminPasswordHash {
		respondError(w, http.StatusBadRequest, "هذا المفتاح محجوز")
		return
	}

	entry, err := h.store.UpsertSiteContent(r.Context(), database.UpsertSiteContentParams{
		ContentKey:   input.ContentKey,
		ContentValue: input.ContentValue,
		ContentType:  input.ContentType,
	})
	if err != nil {
		log.Printf("ERROR: upsert site content: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondMessage(w, toSiteContentResponse(entry), "تم حفظ المحتوى بنجاح")
}
