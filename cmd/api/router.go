package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/authz"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

// SetupRouter declares the HTTP surface. Reads on authors and books are
// public; writes sit behind the matching admin role; the user group is
// admin-only end to end. The services re-check policy, so the route-level
// gates are a first line, not the only one.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Auth(c.JWTManager))

	api := router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		if c.DB != nil {
			if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/login", c.UserHandler.Login)
	}

	authorGroup := api.Group("/author")
	{
		authorGroup.GET("/:id", c.AuthorHandler.Get)
		authorGroup.GET("/:id/book", c.BookHandler.ByAuthor)
		authorGroup.POST("/search", c.AuthorHandler.Search)

		writes := authorGroup.Group("")
		writes.Use(middleware.RequireRoles(authz.RoleAuthorAdmin))
		{
			writes.POST("", c.AuthorHandler.Create)
			writes.PUT("/:id", c.AuthorHandler.Edit)
			writes.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}

	bookGroup := api.Group("/book")
	{
		bookGroup.GET("/:id", c.BookHandler.Get)
		bookGroup.GET("/:id/author", c.BookHandler.Authors)
		bookGroup.POST("/search", c.BookHandler.Search)

		writes := bookGroup.Group("")
		writes.Use(middleware.RequireRoles(authz.RoleBookAdmin))
		{
			writes.POST("", c.BookHandler.Create)
			writes.PUT("/:id", c.BookHandler.Edit)
			writes.DELETE("/:id", c.BookHandler.Delete)
		}
	}

	userGroup := api.Group("/admin/user")
	userGroup.Use(middleware.RequireRoles(authz.RoleUserAdmin))
	{
		userGroup.POST("", c.UserHandler.Create)
		userGroup.GET("/:id", c.UserHandler.Get)
		userGroup.PUT("/:id", c.UserHandler.Edit)
		userGroup.DELETE("/:id", c.UserHandler.Delete)
		userGroup.POST("/search", c.UserHandler.Search)
	}

	return router
}
