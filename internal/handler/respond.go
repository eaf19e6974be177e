package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sandrine-beauty/kika-shop/internal/validate"
)

// Arabic messages shared across handlers.
const (
	msgInternalError  = "حدث خطأ في الخادم"
	msgInvalidBody    = "البيانات المرسلة غير صالحة"
	msgValidation     = "البيانات المدخلة غير صحيحة"
	msgOrderNotFound  = "الطلب غير موجود"
	msgInvalidOrderID = "معرف الطلب غير صحيح"
)

// apiResponse is the envelope every JSON endpoint returns.
type apiResponse struct {
	Success bool                 `json:"success"`
	Data    any                  `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
	Errors  validate.FieldErrors `json:"errors,omitempty"`
	Message string               `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func respondCreated(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Data: data, Message: message})
}

func respondMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: message})
}

// respondFieldErrors returns a 400 with per-field Arabic messages.
func respondFieldErrors(w http.ResponseWriter, errs validate.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Error:   msgValidation,
		Errors:  errs,
	})
}
