package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sandrine-beauty/kika-shop/internal/auth"
	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/enum"
	"github.com/sandrine-beauty/kika-shop/internal/validate"
)

const msgWrongPassword = "كلمة المرور غير صحيحة"

// CredentialStore reads and writes the stored admin password hash.
// Satisfied by *database.Queries.
type CredentialStore interface {
	GetSiteContent(ctx context.Context, key string) (database.SiteContent, error)
	UpsertSiteContent(ctx context.Context, arg database.UpsertSiteContentParams) (database.SiteContent, error)
}

// AuthHandler handles the single shared admin login.
type AuthHandler struct {
	store     CredentialStore
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store CredentialStore, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret}
}

// --- Request / Response types ---

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// --- Handlers ---

// Login verifies the admin password against the stored bcrypt hash and
// issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validate.AdminLogin(req.Password); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	hash, err := h.passwordHash(r.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No hash seeded yet; nothing can match.
			respondError(w, http.StatusUnauthorized, msgWrongPassword)
			return
		}
		log.Printf("ERROR: load password hash: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, msgWrongPassword)
		return
	}

	token, expiresAt, err := auth.GenerateToken(h.jwtSecret)
	if err != nil {
		log.Printf("ERROR: generate token: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondMessage(w, loginResponse{Token: token, ExpiresAt: expiresAt}, "تم تسجيل الدخول بنجاح")
}

// ChangePassword re-verifies the current password, then stores a bcrypt
// hash of the new one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if errs := validate.AdminLogin(req.NewPassword); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	hash, err := h.passwordHash(r.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusUnauthorized, msgWrongPassword)
			return
		}
		log.Printf("ERROR: load password hash: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)) != nil {
		respondError(w, http.StatusUnauthorized, msgWrongPassword)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ERROR: hash password: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if _, err := h.store.UpsertSiteContent(r.Context(), database.UpsertSiteContentParams{
		ContentKey:   enum.ContentKeyAdminPasswordHash,
		ContentValue: string(newHash),
		ContentType:  enum.ContentTypeText,
	}); err != nil {
		log.Printf("ERROR: store password hash: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondMessage(w, nil, "تم تغيير كلمة المرور بنجاح")
}

func (h *AuthHandler) passwordHash(ctx context.Context) (string, error) {
	entry, err := h.store.GetSiteContent(ctx, enum.ContentKeyAdminPasswordHash)
	if err != nil {
		return "", err
	}
	return entry.ContentValue, nil
}
