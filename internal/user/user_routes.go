package user

import (
	"github.com/NicBab/x-tech-app-server/internal/middleware"
	"github.com/NicBab/x-tech-app-server/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", rbac.Authorize(enforcer, "users", "list"), handler.List)
		users.GET("/:id", handler.GetById)
		users.DELETE("/:id", rbac.Authorize(enforcer, "users", "delete"), handler.Delete)
	}
}
