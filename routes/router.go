package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roborush/portal/config"
	"github.com/roborush/portal/internal/admin"
	"github.com/roborush/portal/internal/auth"
	"github.com/roborush/portal/internal/contact"
	"github.com/roborush/portal/internal/instruction"
	"github.com/roborush/portal/internal/mailer"
	"github.com/roborush/portal/internal/notification"
	"github.com/roborush/portal/internal/problem"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config, mail mailer.Enqueuer, log *zap.SugaredLogger) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "RoboRush portal API", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	auth.AuthRoutes(api, db, appConfig)
	round.RoundRoutes(api, db, appConfig)
	problem.ProblemRoutes(api, db, appConfig)
	team.TeamRoutes(api, db, appConfig)
	submission.SubmissionRoutes(api, db, appConfig)
	admin.AdminRoutes(api, db, appConfig, mail, log)
	notification.NotificationRoutes(api, db, appConfig)
	instruction.InstructionRoutes(api, db, appConfig)
	contact.ContactRoutes(api, db, appConfig)

	return r
}
