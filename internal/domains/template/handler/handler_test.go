package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mediaModel "agromap-backend/internal/domains/media/model"
	"agromap-backend/internal/domains/template/model"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	filter  model.ListFilter
	created model.CreateTemplateRequest
	image   *mediaModel.File
}

func (s *stubService) List(_ context.Context, f model.ListFilter) ([]model.Template, error) {
	s.filter = f
	return []model.Template{}, nil
}

func (s *stubService) Get(context.Context, uuid.UUID) (*model.Template, error) {
	return nil, model.ErrTemplateNotFound
}

func (s *stubService) Create(_ context.Context, _ authz.Actor, req model.CreateTemplateRequest, image *mediaModel.File) (*model.Template, error) {
	s.created = req
	s.image = image
	return &model.Template{ID: uuid.New(), Name: req.Name}, nil
}

func (s *stubService) Update(context.Context, authz.Actor, uuid.UUID, model.UpdateTemplateRequest, *mediaModel.File) (*model.Template, error) {
	return nil, model.ErrCategoryNotFound
}

func (s *stubService) Delete(context.Context, authz.Actor, uuid.UUID) error { return nil }

func setupRouter(svc *stubService) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewManager("secret", time.Hour)
	h := NewTemplateHandler(svc)
	auth := middleware.AuthMiddleware(tokens)

	r := gin.New()
	g := r.Group("/api/v1/templates")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", auth, middleware.AdminOnly(), h.Create)
	g.PUT("/:id", auth, middleware.AdminOnly(), h.Update)
	g.DELETE("/:id", auth, middleware.AdminOnly(), h.Delete)

	tok, _ := tokens.GenerateToken(uuid.NewString(), "admin", "ADMIN")
	return r, tok
}

func TestList_CategoryQuery(t *testing.T) {
	svc := &stubService{}
	r, _ := setupRouter(svc)
	categoryID := uuid.New()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/templates?category="+categoryID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter.CategoryID)
	assert.Equal(t, categoryID, *svc.filter.CategoryID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/templates?category=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_MultipartImage(t *testing.T) {
	svc := &stubService{}
	r, tok := setupRouter(svc)
	categoryID := uuid.NewString()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("name", "Boniato")
	_ = mw.WriteField("categoryId", categoryID)
	fw, _ := mw.CreateFormFile("image", "boniato.png")
	_, _ = fw.Write([]byte("png bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"message":"template created"`)
	assert.Equal(t, categoryID, svc.created.CategoryID)
	require.NotNil(t, svc.image)
	assert.Equal(t, "boniato.png", svc.image.Name)
}

func TestWrites_RequireAdmin(t *testing.T) {
	r, tok := setupRouter(&stubService{})
	id := uuid.NewString()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/templates/"+id, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/templates/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"template deleted"}`, w.Body.String())
}
