package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/casafinder/listing-service/internal/property/usecase"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the listing facade over HTTP.
type Handler struct {
	properties *usecase.PropertyUsecase
	search     *usecase.SearchUsecase
	photos     *usecase.PhotoUsecase
	logger     *logger.Logger
}

func NewHandler(properties *usecase.PropertyUsecase, search *usecase.SearchUsecase, photos *usecase.PhotoUsecase, log *logger.Logger) *Handler {
	return &Handler{
		properties: properties,
		search:     search,
		photos:     photos,
		logger:     log,
	}
}

// Register mounts the routes. Everything except search and detail reads
// requires authentication.
func (h *Handler) Register(router chi.Router, auth func(http.Handler) http.Handler) {
	router.Post("/search/pins", h.drawToSearch)
	router.Post("/search/previews", h.previewSearch)
	router.Get("/properties/{propertyID}", h.getProperty)

	router.Group(func(protected chi.Router) {
		protected.Use(auth)
		protected.Post("/properties", h.addProperty)
		protected.Put("/properties/{propertyID}", h.updateProperty)
		protected.Get("/users/me/properties", h.getUserProperties)
		protected.Post("/photos/signature", h.signPhotoUpload)
		protected.Post("/photos", h.archivePhoto)
	})
}

type searchRequest struct {
	GeoCoordinates []domain.GeoPoint   `json:"geoCoordinates"`
	PropertyType   domain.PropertyType `json:"propertyType"`
	RelationType   domain.RelationType `json:"relationType"`
	Page           int64               `json:"page"`
	PageSize       int64               `json:"pageSize"`
}

func (h *Handler) drawToSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.search.DrawToSearch(r.Context(), req.GeoCoordinates, req.PropertyType, req.RelationType)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) previewSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.search.PreviewSearch(r.Context(), req.GeoCoordinates, req.PropertyType, req.RelationType, req.Page, req.PageSize)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	dto, err := h.search.GetPropertyByID(r.Context(), propertyID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) addProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload domain.PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.properties.AddProperty(r.Context(), userID, &payload)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload domain.PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.PropertyID = chi.URLParam(r, "propertyID")

	response, err := h.properties.UpdateProperty(r.Context(), userID, &payload)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getUserProperties(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page := queryInt(r, "page")
	pageSize := queryInt(r, "pageSize")

	response, err := h.search.GetUserProperties(r.Context(), userID, page, pageSize)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

type signUploadRequest struct {
	PublicID string `json:"publicId"`
}

type signUploadResponse struct {
	Signature string `json:"signature"`
	Version   int64  `json:"version"`
}

func (h *Handler) signPhotoUpload(w http.ResponseWriter, r *http.Request) {
	var req signUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicID == "" {
		writeError(w, http.StatusBadRequest, "publicId is required")
		return
	}

	signature, version := h.photos.SignUpload(req.PublicID)
	writeJSON(w, http.StatusOK, signUploadResponse{Signature: signature, Version: version})
}

// maxPhotoBytes caps a single archived photo upload at 10 MiB.
const maxPhotoBytes = 10 << 20

type archivePhotoResponse struct {
	URL string `json:"url"`
}

func (h *Handler) archivePhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read photo file")
		return
	}

	url, err := h.photos.Archive(r.Context(), header.Filename, data)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, archivePhotoResponse{URL: url})
}

// writeDomainError maps domain sentinels onto HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRegion),
		errors.Is(err, domain.ErrUnknownReferenceValue),
		errors.Is(err, domain.ErrInvalidUpload):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		h.logger.Error("request failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func queryInt(r *http.Request, key string) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
