package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	authorRepo "library-backend/internal/domains/author/repository"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/shared/authz"
)

func newTestRouter(t *testing.T) (*gin.Engine, author.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authors := authorRepo.NewMemoryRepository()
	books := bookRepo.NewMemoryRepository()
	h := NewBookHandler(bookService.NewBookService(books, authors, 1000))

	router := gin.New()

	// mirrors the auth middleware: a test header carries the role set
	router.Use(func(c *gin.Context) {
		if names := c.GetHeader("X-Test-Roles"); names != "" {
			ctx := authz.WithRoles(c.Request.Context(), authz.ParseRoles([]string{names}))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})

	api := router.Group("/api")
	api.POST("/book", h.Create)
	api.GET("/book/:id", h.Get)
	api.PUT("/book/:id", h.Edit)
	api.DELETE("/book/:id", h.Delete)
	api.POST("/book/search", h.Search)
	api.GET("/book/:id/author", h.Authors)
	api.GET("/author/:id/book", h.ByAuthor)

	return router, authors
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, roles string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if roles != "" {
		req.Header.Set("X-Test-Roles", roles)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCreateBookEndpoint(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "Test Author A"})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"authorIds": []string{a.ID},
		"title":     "Test Book A",
	}, "BOOK_ADMIN")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)

	var view struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Test Book A", view.Title)
}

func TestCreateBookWithoutRoleForbidden(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "A"})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"authorIds": []string{a.ID},
		"title":     "T",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateBookValidationFailure(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"title": "No Authors",
	}, "BOOK_ADMIN")

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Method argument validation failed", env.Error.Message)
}

func TestGetBookNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/book/5f07c259ffb98843e36a2aa9", nil, "")

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Entity Book with id 5f07c259ffb98843e36a2aa9 not found", env.Error.Message)
}

func TestSearchBooksEndpoint(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "A"})
	require.NoError(t, err)

	for _, title := range []string{"The Shining", "The Stand"} {
		w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
			"authorIds": []string{a.ID},
			"title":     title,
		}, "BOOK_ADMIN")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/book/search", gin.H{
		"query": gin.H{"title": "shining"},
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)

	var list struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "The Shining", list.Items[0].Title)
}

func TestSearchBooksEmptyQueryReturnsAll(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "A"})
	require.NoError(t, err)
	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"authorIds": []string{a.ID},
		"title":     "Only",
	}, "BOOK_ADMIN")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/book/search", gin.H{"query": gin.H{}}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int `json:"total"`
	}
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)
}

func TestBookAuthorsEndpoint(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "Solo"})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"authorIds": []string{a.ID},
		"title":     "Book",
	}, "BOOK_ADMIN")
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		ID string `json:"id"`
	}
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &view))

	w = doJSON(t, router, http.MethodGet, "/api/book/"+view.ID+"/author", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Items []struct {
			FullName string `json:"fullName"`
		} `json:"items"`
		Total int `json:"total"`
	}
	env = decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Solo", list.Items[0].FullName)
}

func TestBooksByAuthorEndpoint(t *testing.T) {
	router, authors := newTestRouter(t)

	a, err := authors.Insert(context.Background(), &author.Author{FullName: "A"})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/book", gin.H{
		"authorIds": []string{a.ID},
		"title":     "By A",
	}, "BOOK_ADMIN")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/author/"+a.ID+"/book", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int `json:"total"`
	}
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)

	w = doJSON(t, router, http.MethodGet, "/api/author/missing/book", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
