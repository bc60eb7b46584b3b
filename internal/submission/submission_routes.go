package submission

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/team"
)

// SubmissionRoutes sets up submission lifecycle routes.
func SubmissionRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewSubmissionRepository(db)
	teamRepo := team.NewTeamRepository(db)
	roundRepo := round.NewRoundRepository(db)
	controller := NewSubmissionController(repo, teamRepo, roundRepo)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authed.POST("/submissions", controller.Submit)
		authed.GET("/submissions", controller.GetSubmissions)
	}
}
