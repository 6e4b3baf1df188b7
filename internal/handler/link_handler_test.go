package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Zfocc31/mern-url-shortener/internal/domain"
	"github.com/Zfocc31/mern-url-shortener/internal/handler"
	"github.com/Zfocc31/mern-url-shortener/pkg/logger"
)

// MockLinkService is a mock implementation of LinkService
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) Shorten(ctx context.Context, originalURL string) (*domain.Link, bool, error) {
	args := m.Called(ctx, originalURL)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Link), args.Bool(1), args.Error(2)
}

func (m *MockLinkService) Resolve(ctx context.Context, shortCode string) (string, error) {
	args := m.Called(ctx, shortCode)
	return args.String(0), args.Error(1)
}

func (m *MockLinkService) List(ctx context.Context) ([]domain.Link, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Link), args.Error(1)
}

// newTestRouter wires the handler into a router with the same routes as
// the server entrypoint
func newTestRouter(svc *MockLinkService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := handler.NewLinkHandler(svc, logger.NewLogger())

	router := gin.New()
	router.POST("/shorten", h.Shorten)
	router.GET("/api/urls", h.List)
	router.GET("/:shortCode", h.Redirect)
	return router
}

func TestShorten_ReturnsCreatedRecord(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	link := &domain.Link{
		ID:          1,
		OriginalURL: "https://example.com/a",
		ShortCode:   "Xy7kQm2p",
		Clicks:      0,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	svc.On("Shorten", mock.Anything, "https://example.com/a").
		Return(link, true, nil)

	req := httptest.NewRequest("POST", "/shorten",
		strings.NewReader(`{"originalUrl":"https://example.com/a"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://example.com/a", body["originalUrl"])
	assert.Equal(t, "Xy7kQm2p", body["shortCode"])
	assert.EqualValues(t, 0, body["clicks"])
	assert.Contains(t, body, "id")
	assert.Contains(t, body, "createdAt")
}

func TestShorten_ExistingRecordReturns200(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	link := &domain.Link{
		ID:          1,
		OriginalURL: "https://example.com/a",
		ShortCode:   "Xy7kQm2p",
		Clicks:      12,
	}
	svc.On("Shorten", mock.Anything, "https://example.com/a").
		Return(link, false, nil)

	req := httptest.NewRequest("POST", "/shorten",
		strings.NewReader(`{"originalUrl":"https://example.com/a"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShorten_MissingURLIsRejected(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/shorten", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Shorten")
}

func TestRedirect_IssuesFoundWithLocation(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	svc.On("Resolve", mock.Anything, "Xy7kQm2p").
		Return("https://example.com/a", nil)

	req := httptest.NewRequest("GET", "/Xy7kQm2p", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/a", w.Header().Get("Location"))
}

func TestRedirect_UnknownCodeIs404(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	svc.On("Resolve", mock.Anything, "doesnotexist").
		Return("", domain.ErrLinkNotFound)

	req := httptest.NewRequest("GET", "/doesnotexist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))

	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "URL not found", body.Error)
}

func TestList_ReturnsLinksInOrder(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	links := []domain.Link{
		{ID: 3, OriginalURL: "https://example.com/c", ShortCode: "ccccdddd"},
		{ID: 2, OriginalURL: "https://example.com/b", ShortCode: "bbbbcccc"},
		{ID: 1, OriginalURL: "https://example.com/a", ShortCode: "aaaabbbb"},
	}
	svc.On("List", mock.Anything).Return(links, nil)

	req := httptest.NewRequest("GET", "/api/urls", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []domain.Link
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "https://example.com/c", body[0].OriginalURL)
	assert.Equal(t, "https://example.com/a", body[2].OriginalURL)
}

func TestList_StoreFailureIs500(t *testing.T) {
	svc := new(MockLinkService)
	router := newTestRouter(svc)

	svc.On("List", mock.Anything).
		Return(nil, domain.NewInternalError(assert.AnError))

	req := httptest.NewRequest("GET", "/api/urls", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
