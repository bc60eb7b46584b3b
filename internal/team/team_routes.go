package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/internal/round"
)

// TeamRoutes sets up team lifecycle routes. Problem selection is routed
// here because it mutates the caller's team.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	teamRepo := NewTeamRepository(db)
	roundRepo := round.NewRoundRepository(db)
	controller := NewTeamController(teamRepo, roundRepo, db)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authed.POST("/teams", controller.CreateTeam)
		authed.POST("/teams/join", controller.JoinTeam)
		authed.GET("/teams/me", controller.GetMyTeam)
		authed.PUT("/teams/leave", controller.LeaveTeam)

		authed.POST("/problems/select", controller.SelectProblem)
	}
}
