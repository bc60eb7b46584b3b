package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	mw "github.com/roborush/portal/internal/middleware"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/pkg/rmiddleware"
)

// NotificationRoutes sets up the notification inbox and the admin
// broadcast surface.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewNotificationRepository(db)
	teamRepo := team.NewTeamRepository(db)
	controller := NewNotificationController(repo, teamRepo, db)

	userRoutes := router.Group("/notifications")
	userRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		userRoutes.GET("", controller.GetUserNotifications)
		userRoutes.PUT("/:id/read", controller.MarkAsRead)
		userRoutes.PUT("/read-all", controller.MarkAllAsRead)
	}

	adminRoutes := router.Group("/notifications")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware())
	{
		adminRoutes.POST("", controller.CreateNotification)
		adminRoutes.GET("/broadcasts", controller.GetBroadcasts)
		adminRoutes.DELETE("/broadcasts/:batchId", controller.DeleteBroadcast)
	}
}
