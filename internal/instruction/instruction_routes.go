package instruction

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// InstructionRoutes sets up the instructions page. Reading is public,
// editing is admin-only.
func InstructionRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewInstructionRepository(db)
	controller := NewInstructionController(repo)

	router.GET("/instructions", controller.GetInstructions)

	adminRoutes := router.Group("/instructions")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.PUT("", controller.UpdateInstructions)
	}
}
