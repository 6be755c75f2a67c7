package main

import (
	"log"

	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/db"
	"github.com/soufdev/fraudline/mailingservices"
	"github.com/soufdev/fraudline/server"
	"github.com/soufdev/fraudline/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize Mailgun client
	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	reportRepo := db.NewReportRepo(gormDB)

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	reportService := services.NewReportService(reportRepo, conf)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Mail:             mailgunClient,
		Config:           conf,
		AuthRepository:   authRepo,
		ReportRepository: reportRepo,
		AuthService:      authService,
		ReportService:    reportService,
		MediaService:     mediaService,
		DB:               *gormDB,
	}

	s.Start()
}
