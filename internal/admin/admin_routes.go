package admin

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/internal/mailer"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// AdminRoutes sets up the admin review/outcome surface. The winners list
// is public; everything else requires the admin role.
func AdminRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, mail mailer.Enqueuer, log *zap.SugaredLogger) {
	teamRepo := team.NewTeamRepository(db)
	subRepo := submission.NewSubmissionRepository(db)
	controller := NewAdminController(teamRepo, subRepo, db, mail, log)

	router.GET("/admin/winners", controller.GetWinners)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.GET("/teams", controller.GetAllTeams)
		adminRoutes.DELETE("/teams/:id", controller.DeleteTeam)
		adminRoutes.POST("/teams/:id/members", controller.AddMemberToTeam)
		adminRoutes.DELETE("/teams/:id/members/:userId", controller.RemoveMemberFromTeam)
		adminRoutes.PUT("/submissions/:id/status", controller.UpdateSubmissionStatus)
		adminRoutes.POST("/winners", controller.SetWinner)
		adminRoutes.GET("/users", controller.GetAllUsers)
		adminRoutes.DELETE("/users/:id", controller.DeleteUser)
	}
}
