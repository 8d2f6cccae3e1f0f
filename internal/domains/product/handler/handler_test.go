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
	"agromap-backend/internal/domains/product/model"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastFilter model.ListFilter
	lastUpdate model.UpdateProductRequest
	lastImages []mediaModel.File
}

func (s *stubService) List(_ context.Context, f model.ListFilter) ([]model.ProductListItem, error) {
	s.lastFilter = f
	return []model.ProductListItem{}, nil
}

func (s *stubService) GetDetail(context.Context, uuid.UUID) (*model.ProductDetail, error) {
	return nil, model.ErrProductNotFound
}

func (s *stubService) Mine(context.Context, authz.Actor) ([]model.ProductListItem, error) {
	return nil, model.ErrNoMarket
}

func (s *stubService) Create(_ context.Context, _ authz.Actor, _ model.CreateProductRequest, images []mediaModel.File) (*model.ProductDetail, error) {
	if len(images) == 0 {
		return nil, model.ErrImageRequired
	}
	return &model.ProductDetail{Product: model.Product{ID: uuid.New()}}, nil
}

func (s *stubService) Update(_ context.Context, _ authz.Actor, id uuid.UUID, req model.UpdateProductRequest, images []mediaModel.File) (*model.ProductDetail, error) {
	s.lastUpdate = req
	s.lastImages = images
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	return &model.ProductDetail{Product: model.Product{ID: id}}, nil
}

func (s *stubService) Delete(context.Context, authz.Actor, uuid.UUID) error { return model.ErrForbidden }

func setupRouter(svc *stubService) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewManager("secret", time.Hour)
	tok, _ := tokens.GenerateToken(uuid.NewString(), "gestor", "MANAGER")
	h := NewProductHandler(svc)
	auth := middleware.AuthMiddleware(tokens)

	r := gin.New()
	g := r.Group("/api/v1/products")
	g.GET("", h.List)
	g.GET("/mine", auth, middleware.ManagerOrAdmin(), h.Mine)
	g.GET("/:id", h.Get)
	g.POST("", auth, middleware.ManagerOrAdmin(), h.Create)
	g.PUT("/:id", auth, middleware.ManagerOrAdmin(), h.Update)
	g.DELETE("/:id", auth, middleware.ManagerOrAdmin(), h.Delete)
	return r, tok
}

func serve(r http.Handler, req *http.Request, tok string) *httptest.ResponseRecorder {
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_ParsesFilters(t *testing.T) {
	svc := &stubService{}
	r, _ := setupRouter(svc)
	category := uuid.New()

	w := serve(r, httptest.NewRequest(http.MethodGet,
		"/api/v1/products?province=Villa+Clara&category="+category.String()+"&status=unavailable&type=Viandas", nil), "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Villa Clara", *svc.lastFilter.Province)
	assert.Equal(t, category, *svc.lastFilter.CategoryID)
	assert.Equal(t, model.StatusUnavailable, *svc.lastFilter.Status)
	assert.Equal(t, "Viandas", *svc.lastFilter.ProductType)
	assert.Nil(t, svc.lastFilter.MarketID)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products?status=SOLD", nil), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products?market=abc", nil), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_RequiresImage(t *testing.T) {
	r, tok := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(`{"name":"Yuca"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req, tok)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one product image")
}

func TestUpdate_MultipartKeepsExistingImages(t *testing.T) {
	svc := &stubService{}
	r, tok := setupRouter(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("price", "42.50")
	_ = mw.WriteField("existingImages", `["http://minio/agromap/products/a.jpg"]`)
	fw, _ := mw.CreateFormFile("images", "b.jpg")
	_, _ = fw.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+uuid.NewString(), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req, tok)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "42.50", svc.lastUpdate.PriceText)
	assert.Len(t, svc.lastImages, 1)
	assert.Contains(t, w.Body.String(), `"message":"product updated"`)
}

func TestDelete_Forbidden(t *testing.T) {
	r, tok := setupRouter(&stubService{})

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+uuid.NewString(), nil), tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products/mine", nil), tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
