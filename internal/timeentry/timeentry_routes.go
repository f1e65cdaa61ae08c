package timeentry

import (
	"github.com/NicBab/x-tech-app-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, idempotency gin.HandlerFunc) {
	times := r.Group("/times")
	times.Use(middleware.AuthMiddleware())
	{
		times.GET("", handler.List)
		times.GET("/:id", handler.GetById)
		times.POST("", handler.Upsert)
		times.POST("/:id/resubmit", idempotency, handler.Resubmit)
		times.PATCH("/:id/submit", handler.Submit)
		times.PATCH("/:id", handler.Update)
		times.DELETE("/:id", handler.Delete)
	}
}
