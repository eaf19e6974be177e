package handler

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sandrine-beauty/kika-shop/internal/validate"
)

// UploadHandler stores product images under the configured upload
// directory and returns their public URL.
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

// extByType maps accepted sniffed content types to file extensions.
// Uploads are renamed to a random name, so nothing of the client-supplied
// filename reaches the filesystem.
var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload accepts one multipart image in the "file" field. The content type
// is sniffed from the payload, not taken from the request.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validate.MaxUploadSize+1024)
	if err := r.ParseMultipartForm(validate.MaxUploadSize); err != nil {
		respondFieldErrors(w, validate.FieldErrors{{Field: "file", Message: "حجم الملف يجب أن يكون أقل من 5 ميجابايت"}})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondFieldErrors(w, validate.FieldErrors{{Field: "file", Message: "يجب اختيار ملف"}})
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		log.Printf("ERROR: read upload: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	contentType := http.DetectContentType(head[:n])

	if errs := validate.Upload(validate.UploadInput{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		log.Printf("ERROR: rewind upload: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	name := uuid.New().String() + extByType[contentType]
	path := filepath.Join(h.dir, name)

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		log.Printf("ERROR: create upload dir: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	dst, err := os.Create(path)
	if err != nil {
		log.Printf("ERROR: create upload file: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		log.Printf("ERROR: write upload: %v", err)
		respondError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondCreated(w, uploadResponse{
		URL:      "/uploads/" + name,
		Filename: name,
		Size:     header.Size,
		Type:     contentType,
	}, "تم رفع الصورة بنجاح")
}
