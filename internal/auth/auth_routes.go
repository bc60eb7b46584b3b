package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
)

// AuthRoutes sets up signup/login/current-user routes.
func AuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, appConfig)

	router.POST("/auth/signup", controller.Register)
	router.POST("/auth/login", controller.Login)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authed.GET("/auth/me", controller.Me)
	}
}
