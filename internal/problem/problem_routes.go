package problem

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// ProblemRoutes sets up problem catalogue routes. Listing is public,
// mutation is admin-only. POST /problems/select is registered by the team
// package since selection mutates the caller's team.
func ProblemRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewProblemRepository(db)
	controller := NewProblemController(repo)

	router.GET("/problems", controller.GetProblems)

	adminRoutes := router.Group("/")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("/problems", controller.CreateProblem)
		adminRoutes.PUT("/problems/:id", controller.UpdateProblem)
		adminRoutes.DELETE("/problems/:id", controller.DeleteProblem)
	}
}
