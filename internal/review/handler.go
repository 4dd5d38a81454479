package review

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/codereview/backend/internal/models"
)

// allowedExtensions are the upload file types accepted, matched
// case-sensitively against the text after the final dot.
var allowedExtensions = map[string]bool{
	"py":  true,
	"js":  true,
	"jsx": true,
}

const maxUploadBytes = 10 << 20

type Handler struct {
	svc   *Service
	store *Store
}

func NewHandler(svc *Service, store *Store) *Handler {
	return &Handler{svc: svc, store: store}
}

// ReviewCode handles POST /code-review: raw code in a JSON body.
func (h *Handler) ReviewCode(w http.ResponseWriter, r *http.Request) {
	var req models.CodeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Code is required"})
		return
	}

	h.runReview(w, r, req, "")
}

// UploadCode handles POST /upload-code: a multipart file upload. The language
// is taken from the file extension and the filename becomes review context.
func (h *Handler) UploadCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "A file upload named 'file' is required"})
		return
	}
	defer file.Close()

	parts := strings.Split(header.Filename, ".")
	ext := parts[len(parts)-1]
	if !allowedExtensions[ext] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file type %q (supported: py, js, jsx)", ext),
		})
		return
	}

	code, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}

	req := models.CodeReviewRequest{
		Code:     string(code),
		Language: ext,
		Context:  "File: " + header.Filename,
	}
	h.runReview(w, r, req, header.Filename)
}

func (h *Handler) runReview(w http.ResponseWriter, r *http.Request, req models.CodeReviewRequest, fileName string) {
	resp, err := h.svc.Review(r.Context(), req, fileName, userIDFrom(r))
	if err != nil {
		var ule *UnsupportedLanguageError
		if errors.As(err, &ule) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: ule.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error: fmt.Sprintf("Error analyzing code: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListReviews handles GET /reviews for the authenticated user.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	list, err := h.store.ListByUser(userID, page, pageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load reviews"})
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// GetReview handles GET /reviews/{id} for the authenticated user.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid review id"})
		return
	}

	review, err := h.store.GetByID(id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Review not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load review"})
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// GetStats handles GET /reviews/stats for the authenticated user.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	stats, err := h.store.Stats(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// userIDFrom returns the authenticated user's id, or nil for anonymous
// requests that came through the optional auth middleware.
func userIDFrom(r *http.Request) *int64 {
	if id, ok := r.Context().Value("user_id").(int64); ok {
		return &id
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
