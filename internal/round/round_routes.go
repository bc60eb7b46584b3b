package round

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// RoundRoutes sets up round-registry routes. Listing is public; mutation
// and score upload are admin-only.
func RoundRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewRoundRepository(db)
	controller := NewRoundController(repo, db)

	router.GET("/rounds", controller.GetRounds)

	adminRoutes := router.Group("/")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("/rounds", controller.CreateRound)
		adminRoutes.PUT("/rounds/:id", controller.UpdateRound)
		adminRoutes.PUT("/rounds/:id/scores", controller.UploadScores)
	}
}
