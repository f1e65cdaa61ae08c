package product

import (
	"github.com/NicBab/x-tech-app-server/internal/middleware"
	"github.com/NicBab/x-tech-app-server/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *rbac.Enforcer) {
	products := r.Group("/products")
	products.Use(middleware.AuthMiddleware())
	{
		products.GET("", handler.List)
		products.GET("/:id", handler.GetById)
		products.POST("", rbac.Authorize(enforcer, "products", "create"), handler.Create)
		products.DELETE("/:id", rbac.Authorize(enforcer, "products", "delete"), handler.Delete)
	}
}
