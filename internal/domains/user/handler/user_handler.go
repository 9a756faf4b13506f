package handler

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

// Create - POST /api/admin/user
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, created.View())
}

// Edit - PUT /api/admin/user/:id
func (h *UserHandler) Edit(c *gin.Context) {
	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Edit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, updated.View())
}

// Delete - DELETE /api/admin/user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Get - GET /api/admin/user/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, u.View())
}

// Search - POST /api/admin/user/search
func (h *UserHandler) Search(c *gin.Context) {
	var req response.SearchRequest[user.SearchUsersQuery]
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	users, err := h.service.Search(c.Request.Context(), &req.Query)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.NewList(user.Views(users)))
}

// Login - POST /api/auth/login
// Credential failures map to 401 regardless of cause.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if apperror.IsAuthorization(err) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		response.HandleError(c, err)
		return
	}
	response.OK(c, resp)
}
