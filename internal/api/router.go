package api

import (
	"parking_app/internal/api/handler"
	"parking_app/internal/api/middleware"
	"parking_app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter serves every collection of store under /:collection, the way a
// json-server style mock API does.
func SetupRouter(store repository.DocumentStore, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	collectionH := handler.NewCollectionHandler(store, logger)
	r.GET("/db", collectionH.Dump)

	collections := r.Group("/:collection")
	{
		collections.GET("", collectionH.List)
		collections.POST("", collectionH.Create)
		collections.GET("/:id", collectionH.Get)
		collections.PUT("/:id", collectionH.Replace)
		collections.PATCH("/:id", collectionH.Merge)
		collections.DELETE("/:id", collectionH.Delete)
	}
	return r
}
