package dlr

import (
	"github.com/NicBab/x-tech-app-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dlrs := r.Group("/dlrs")
	dlrs.Use(middleware.AuthMiddleware())
	{
		dlrs.GET("", handler.List)
		dlrs.GET("/:id", handler.GetById)
		dlrs.POST("", handler.Create)
		dlrs.PATCH("/:id/submit", handler.Submit)
		dlrs.PATCH("/:id", handler.Update)
		dlrs.DELETE("/:id", handler.Delete)
	}
}
