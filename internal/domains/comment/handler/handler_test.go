package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agromap-backend/internal/domains/comment/model"
	"agromap-backend/internal/shared/authz"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	lastViewer *uuid.UUID
	likeErr    error
	createErr  error
}

func (s *stubService) ListForProduct(_ context.Context, productID uuid.UUID, viewer *uuid.UUID) ([]model.CommentView, error) {
	s.lastViewer = viewer
	return []model.CommentView{{Comment: model.Comment{ID: uuid.New(), ProductID: productID, Text: "hola"}}}, nil
}

func (s *stubService) Create(_ context.Context, actor authz.Actor, req model.CreateCommentRequest) (*model.CommentView, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.CommentView{Comment: model.Comment{ID: uuid.New(), UserID: actor.ID, ProductID: req.ProductID, Text: req.Text}}, nil
}

func (s *stubService) Update(context.Context, authz.Actor, uuid.UUID, model.UpdateCommentRequest) (*model.CommentView, error) {
	return nil, model.ErrForbidden
}

func (s *stubService) Delete(context.Context, authz.Actor, uuid.UUID) error { return nil }

func (s *stubService) Like(_ context.Context, actor authz.Actor, id uuid.UUID) (*model.CommentView, error) {
	if s.likeErr != nil {
		return nil, s.likeErr
	}
	return &model.CommentView{Comment: model.Comment{ID: id, Likes: 1}, ViewerHasLiked: true}, nil
}

func (s *stubService) Unlike(context.Context, authz.Actor, uuid.UUID) (*model.CommentView, error) {
	return nil, model.ErrNotLiked
}

func setupRouter(svc *stubService) (*gin.Engine, *jwt.Manager) {
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewManager("secret", time.Hour)
	h := NewCommentHandler(svc)

	r := gin.New()
	g := r.Group("/api/v1/comments")
	g.GET("/by-product/:productId", middleware.OptionalAuthMiddleware(tokens), h.ListByProduct)
	g.POST("", middleware.AuthMiddleware(tokens), h.Create)
	g.PUT("/:id", middleware.AuthMiddleware(tokens), h.Update)
	g.DELETE("/:id", middleware.AuthMiddleware(tokens), h.Delete)
	g.POST("/:id/like", middleware.AuthMiddleware(tokens), h.Like)
	g.POST("/:id/unlike", middleware.AuthMiddleware(tokens), h.Unlike)
	return r, tokens
}

func request(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListByProduct_ViewerIsOptional(t *testing.T) {
	svc := &stubService{}
	r, tokens := setupRouter(svc)
	path := "/api/v1/comments/by-product/" + uuid.NewString()

	w := request(r, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastViewer)

	userID := uuid.New()
	token, err := tokens.GenerateToken(userID.String(), "ana", "REGULAR")
	require.NoError(t, err)

	w = request(r, http.MethodGet, path, token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastViewer)
	assert.Equal(t, userID, *svc.lastViewer)

	w = request(r, http.MethodGet, "/api/v1/comments/by-product/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate(t *testing.T) {
	svc := &stubService{}
	r, tokens := setupRouter(svc)
	token, _ := tokens.GenerateToken(uuid.NewString(), "ana", "REGULAR")
	body := `{"productId":"` + uuid.NewString() + `","text":"Buenos mangos"}`

	w := request(r, http.MethodPost, "/api/v1/comments", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/api/v1/comments", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var out struct {
		Message string            `json:"message"`
		Comment model.CommentView `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Buenos mangos", out.Comment.Text)

	w = request(r, http.MethodPost, "/api/v1/comments", token, `{"productId": 12`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.createErr = model.ErrDuplicateComment
	w = request(r, http.MethodPost, "/api/v1/comments", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "edit your existing comment")
}

func TestLikeUnlike_StatusCodes(t *testing.T) {
	svc := &stubService{}
	r, tokens := setupRouter(svc)
	token, _ := tokens.GenerateToken(uuid.NewString(), "ana", "REGULAR")
	id := uuid.NewString()

	w := request(r, http.MethodPost, "/api/v1/comments/"+id+"/like", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"viewerHasLiked":true`)

	svc.likeErr = model.ErrAlreadyLiked
	w = request(r, http.MethodPost, "/api/v1/comments/"+id+"/like", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"you already liked this comment"}`, w.Body.String())

	w = request(r, http.MethodPost, "/api/v1/comments/"+id+"/unlike", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.likeErr = model.ErrCommentNotFound
	w = request(r, http.MethodPost, "/api/v1/comments/"+id+"/like", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate_ForbiddenIs403(t *testing.T) {
	r, tokens := setupRouter(&stubService{})
	token, _ := tokens.GenerateToken(uuid.NewString(), "ana", "REGULAR")

	w := request(r, http.MethodPut, "/api/v1/comments/"+uuid.NewString(), token, `{"text":"x"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
