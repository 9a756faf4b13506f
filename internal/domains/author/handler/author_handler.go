package handler

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /api/author
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
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

// Edit - PUT /api/author/:id
func (h *AuthorHandler) Edit(c *gin.Context) {
	var req author.EditAuthorRequest
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

// Delete - DELETE /api/author/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Get - GET /api/author/:id
func (h *AuthorHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, a.View())
}

// Search - POST /api/author/search
func (h *AuthorHandler) Search(c *gin.Context) {
	var req response.SearchRequest[author.SearchAuthorsQuery]
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authors, err := h.service.Search(c.Request.Context(), &req.Query)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.NewList(author.Views(authors)))
}
