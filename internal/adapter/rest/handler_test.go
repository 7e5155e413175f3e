package rest

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"github.com/casafinder/listing-service/internal/property/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocationStore struct {
	points map[string]domain.GeoPoint
}

func (s *stubLocationStore) GetPoint(ctx context.Context, locationID string) (domain.GeoPoint, error) {
	point, ok := s.points[locationID]
	if !ok {
		return domain.GeoPoint{}, domain.ErrLocationNotFound
	}
	return point, nil
}

func (s *stubLocationStore) CreatePoint(ctx context.Context, latitude, longitude float64) (string, error) {
	return "loc-new", nil
}

func (s *stubLocationStore) UpdatePoint(ctx context.Context, locationID string, latitude, longitude float64) error {
	return nil
}

func (s *stubLocationStore) QueryRegion(ctx context.Context, region domain.Region) (map[string]domain.GeoPoint, error) {
	return s.points, nil
}

type stubSearchRepo struct{}

func (s *stubSearchRepo) FindPins(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) ([]domain.PinRecord, error) {
	return nil, nil
}

func (s *stubSearchRepo) CountInLocations(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType) (int64, error) {
	return 0, nil
}

func (s *stubSearchRepo) FindPreviews(ctx context.Context, locationIDs []string, propertyType domain.PropertyType, relationType domain.RelationType, skip, limit int64) ([]domain.PreviewRecord, error) {
	return nil, nil
}

func (s *stubSearchRepo) FindByID(ctx context.Context, propertyID string) (*domain.PropertyRecord, error) {
	return nil, domain.ErrPropertyNotFound
}

func (s *stubSearchRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (s *stubSearchRepo) FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*domain.PropertyRecord, error) {
	return nil, nil
}

type stubPropertyRepo struct {
	refs domain.AggregateRefs
}

func (s *stubPropertyRepo) Create(ctx context.Context, userID string, payload *domain.PropertyPayload) (string, error) {
	return "prop-1", nil
}

func (s *stubPropertyRepo) Update(ctx context.Context, refs domain.AggregateRefs, payload *domain.PropertyPayload) error {
	return nil
}

func (s *stubPropertyRepo) FindRefs(ctx context.Context, propertyID string) (domain.AggregateRefs, error) {
	return s.refs, nil
}

type stubCache struct{}

func (s *stubCache) GetProperty(ctx context.Context, propertyID string) (*domain.PropertyDto, error) {
	return nil, nil
}

func (s *stubCache) SetProperty(ctx context.Context, dto *domain.PropertyDto) error { return nil }

func (s *stubCache) DeleteProperty(ctx context.Context, propertyID string) error { return nil }

type stubVerifier struct{ valid bool }

func (s *stubVerifier) IsUploadOk(publicID string, version int64, signature string) bool {
	return s.valid
}

type stubPublisher struct{}

func (s *stubPublisher) PublishPropertyCreated(ctx context.Context, propertyID, userID string) error {
	return nil
}

func (s *stubPublisher) PublishPropertyUpdated(ctx context.Context, propertyID, userID string) error {
	return nil
}

type stubEmailFinder struct{}

func (s *stubEmailFinder) GetEmailByID(ctx context.Context, userID string) (string, error) {
	return "owner@example.com", nil
}

type stubNotifier struct{}

func (s *stubNotifier) SendPropertyCreated(toEmail, propertyID string) error { return nil }

type stubIssuer struct{}

func (s *stubIssuer) Signature(publicID string, version int64) string { return "sig" }

type stubPhotoStorage struct {
	uploaded []string
	lastData []byte
}

func (s *stubPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	s.uploaded = append(s.uploaded, fileName)
	s.lastData = data
	return "http://storage/" + fileName, nil
}

func newTestRouter(t *testing.T, verifierValid bool) (chi.Router, *stubPhotoStorage) {
	t.Helper()
	log := logger.NewLogger()

	propertyUC := usecase.NewPropertyUsecase(
		&stubPropertyRepo{refs: domain.AggregateRefs{PropertyID: "prop-1", UserID: "owner"}},
		&stubVerifier{valid: verifierValid},
		&stubPublisher{},
		&stubCache{},
		&stubEmailFinder{},
		&stubNotifier{},
		log,
	)
	searchUC := usecase.NewSearchUsecase(&stubLocationStore{}, &stubSearchRepo{}, &stubCache{}, log)
	storage := &stubPhotoStorage{}
	photoUC := usecase.NewPhotoUsecase(storage, &stubIssuer{}, log)

	handler := NewHandler(propertyUC, searchUC, photoUC, log)
	router := chi.NewRouter()
	handler.Register(router, AuthMiddleware(testSecret, log))
	return router, storage
}

func TestDrawToSearch_InvalidRegionReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t, true)

	body := `{"geoCoordinates":[{"latitude":1,"longitude":1}],"propertyType":"APARTMENT","relationType":"RENT"}`
	request := httptest.NewRequest(http.MethodPost, "/search/pins", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetProperty_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, true)

	request := httptest.NewRequest(http.MethodGet, "/properties/missing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddProperty_RequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t, true)

	request := httptest.NewRequest(http.MethodPost, "/properties", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestUpdateProperty_NonOwnerForbidden(t *testing.T) {
	router, _ := newTestRouter(t, true)
	token := signTestToken(t, "intruder", time.Now().Add(time.Hour))

	request := httptest.NewRequest(http.MethodPut, "/properties/prop-1", strings.NewReader(`{}`))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAddProperty_InvalidPhotoSignature(t *testing.T) {
	router, _ := newTestRouter(t, false)
	token := signTestToken(t, "user-1", time.Now().Add(time.Hour))

	body := `{"photos":[{"imageId":"img-1","uploadedPhotoSignature":"bad","version":1}]}`
	request := httptest.NewRequest(http.MethodPost, "/properties", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddProperty_Created(t *testing.T) {
	router, _ := newTestRouter(t, true)
	token := signTestToken(t, "owner", time.Now().Add(time.Hour))

	request := httptest.NewRequest(http.MethodPost, "/properties", strings.NewReader(`{}`))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Property added successfully")
}

func TestArchivePhoto_StoresFile(t *testing.T) {
	router, storage := newTestRouter(t, true)
	token := signTestToken(t, "user-1", time.Now().Add(time.Hour))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", "kitchen.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/photos", &body)
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"url":"http://storage/kitchen.jpg"`)
	assert.Equal(t, []string{"kitchen.jpg"}, storage.uploaded)
	assert.Equal(t, []byte("jpeg-bytes"), storage.lastData)
}

func TestArchivePhoto_MissingFile(t *testing.T) {
	router, storage := newTestRouter(t, true)
	token := signTestToken(t, "user-1", time.Now().Add(time.Hour))

	request := httptest.NewRequest(http.MethodPost, "/photos", strings.NewReader("not multipart"))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, storage.uploaded)
}

func TestArchivePhoto_RequiresAuthentication(t *testing.T) {
	router, _ := newTestRouter(t, true)

	request := httptest.NewRequest(http.MethodPost, "/photos", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSignPhotoUpload(t *testing.T) {
	router, _ := newTestRouter(t, true)
	token := signTestToken(t, "user-1", time.Now().Add(time.Hour))

	request := httptest.NewRequest(http.MethodPost, "/photos/signature", strings.NewReader(`{"publicId":"listings/abc"}`))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"signature":"sig"`)
}
