package handler

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/response"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{service: svc}
}

// Create - POST /api/book
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
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

// Edit - PUT /api/book/:id
func (h *BookHandler) Edit(c *gin.Context) {
	var req book.EditBookRequest
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

// Delete - DELETE /api/book/:id
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

// Get - GET /api/book/:id
func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, b.View())
}

// Search - POST /api/book/search
func (h *BookHandler) Search(c *gin.Context) {
	var req response.SearchRequest[book.SearchBooksQuery]
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, err := h.service.Search(c.Request.Context(), &req.Query)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.NewList(book.Views(books)))
}

// Authors - GET /api/book/:id/author
func (h *BookHandler) Authors(c *gin.Context) {
	authors, err := h.service.Authors(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.NewList(author.Views(authors)))
}

// ByAuthor - GET /api/author/:id/book
func (h *BookHandler) ByAuthor(c *gin.Context) {
	books, err := h.service.ByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, response.NewList(book.Views(books)))
}
