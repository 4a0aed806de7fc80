package api

import (
	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// SetupRouter builds the full route graph. Reads on the catalog and on
// reviews/comments are public; every write goes through the auth middleware
// and, for the catalog and user administration, the admin gate.
func SetupRouter(r *gin.Engine, h Handlers, authService service.AuthService, limiter middleware.RateLimiter) {
	v1 := r.Group("/api/v1")

	// unauthenticated, rate limited
	authRoutes := v1.Group("/auth", middleware.RateLimit(limiter))
	{
		authRoutes.POST("/signup", h.Auth.Signup)
		authRoutes.POST("/token", h.Auth.Token)
	}

	// public reads
	v1.GET("/categories", h.Category.List)
	v1.GET("/categories/:slug", h.Category.Get)
	v1.GET("/genres", h.Genre.List)
	v1.GET("/genres/:slug", h.Genre.Get)
	v1.GET("/titles", h.Title.List)
	v1.GET("/titles/:title_id", h.Title.Get)
	v1.GET("/titles/:title_id/reviews", h.Review.List)
	v1.GET("/titles/:title_id/reviews/:review_id", h.Review.Get)
	v1.GET("/titles/:title_id/reviews/:review_id/comments", h.Comment.List)
	v1.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Comment.Get)

	// any authenticated user
	authed := v1.Group("", middleware.AuthMiddleware(authService))
	{
		authed.GET("/users/me", h.User.Me)
		authed.PATCH("/users/me", h.User.UpdateMe)

		authed.POST("/titles/:title_id/reviews", h.Review.Create)
		authed.PATCH("/titles/:title_id/reviews/:review_id", h.Review.Update)
		authed.DELETE("/titles/:title_id/reviews/:review_id", h.Review.Delete)

		authed.POST("/titles/:title_id/reviews/:review_id/comments", h.Comment.Create)
		authed.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Comment.Update)
		authed.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Comment.Delete)
	}

	// admin only
	admin := v1.Group("", middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	{
		admin.POST("/categories", h.Category.Create)
		admin.PATCH("/categories/:slug", h.Category.Update)
		admin.DELETE("/categories/:slug", h.Category.Delete)
		admin.POST("/genres", h.Genre.Create)
		admin.PATCH("/genres/:slug", h.Genre.Update)
		admin.DELETE("/genres/:slug", h.Genre.Delete)
		admin.POST("/titles", h.Title.Create)
		admin.PATCH("/titles/:title_id", h.Title.Update)
		admin.DELETE("/titles/:title_id", h.Title.Delete)

		admin.GET("/users", h.User.List)
		admin.POST("/users", h.User.Create)
		admin.GET("/users/:username", h.User.Get)
		admin.PATCH("/users/:username", h.User.Update)
		admin.DELETE("/users/:username", h.User.Delete)
	}
}
