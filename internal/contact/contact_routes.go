package contact

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// ContactRoutes sets up the organizer contacts page. Listing is public,
// editing is admin-only.
func ContactRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewContactRepository(db)
	controller := NewContactController(repo)

	router.GET("/contacts", controller.GetContacts)

	adminRoutes := router.Group("/contacts")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", controller.AddContact)
		adminRoutes.DELETE("/:id", controller.DeleteContact)
	}
}
