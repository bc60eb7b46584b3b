package main

import (
	"context"
	"log"

	"github.com/roborush/portal/config"
	_ "github.com/roborush/portal/docs"
	"github.com/roborush/portal/internal/contact"
	"github.com/roborush/portal/internal/instruction"
	"github.com/roborush/portal/internal/mailer"
	"github.com/roborush/portal/internal/notification"
	"github.com/roborush/portal/internal/problem"
	"github.com/roborush/portal/internal/round"
	"github.com/roborush/portal/internal/submission"
	"github.com/roborush/portal/internal/team"
	"github.com/roborush/portal/internal/user"
	"github.com/roborush/portal/routes"
)

// @title RoboRush Portal API
// @version 1.0
// @description Backend for the RoboRush hackathon portal: teams, problem statements, round submissions and admin review.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{},
		&round.Round{}, &round.Score{},
		&problem.Problem{},
		&team.Team{}, &team.TeamMember{}, &team.TeamTagCounter{},
		&submission.Submission{},
		&notification.Notification{},
		&instruction.Instruction{},
		&contact.Contact{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	rdb, err := mailer.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	mailQueue := mailer.NewQueue(rdb, cfg.Redis.MailQueue)

	// Outbound mail leaves through a Redis queue; a worker drains it in the
	// background so request handlers never block on SMTP.
	worker := mailer.NewWorker(rdb, cfg.Redis.MailQueue, mailer.NewSMTPSender(cfg), config.Log)
	go worker.Start(context.Background())

	r := routes.SetupRoutes(config.DB, cfg, mailQueue, config.Log)

	config.Log.Infow("starting server", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
