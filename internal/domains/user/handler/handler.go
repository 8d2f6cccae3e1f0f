package handler

import (
	media "agromap-backend/internal/domains/media/handler"
	"agromap-backend/internal/domains/user/model"
	"agromap-backend/internal/domains/user/service"
	"agromap-backend/internal/shared/apperror"
	"agromap-backend/internal/shared/middleware"
	"agromap-backend/internal/shared/response"
	"agromap-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

type authEnvelope struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type userEnvelope struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// ========================================
// AUTH
// ========================================

// Register accepts JSON or multipart/form-data with an optional "image" file
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// Step 1: fields and file
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid(model.ErrInvalidUser.Message, err))
		return
	}
	image, err := media.FormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	// Step 2: service
	res, err := h.userService.Register(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, authEnvelope{Message: "user registered", Token: res.Token, User: res.User})
}

// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, authEnvelope{Message: "login successful", Token: res.Token, User: res.User})
}

// GET /api/v1/auth/profile
func (h *UserHandler) Profile(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	u, err := h.userService.Profile(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, u)
}

// PUT /api/v1/auth/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}
	image, err := media.FormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), actor, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, userEnvelope{Message: "profile updated", User: u})
}

// ========================================
// ADMIN
// ========================================

// GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	users, err := h.userService.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, users)
}

// POST /api/v1/admin/users
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	var req model.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.Invalid(model.ErrInvalidUser.Message, err))
		return
	}
	image, err := media.FormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.userService.Create(c.Request.Context(), actor, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, userEnvelope{Message: "user created", User: u})
}

// PUT /api/v1/admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Invalid("invalid request body", err))
		return
	}

	u, err := h.userService.ChangeRole(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, userEnvelope{Message: "role updated", User: u})
}

// DELETE /api/v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("user not authenticated"))
		return
	}

	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "user deleted")
}
