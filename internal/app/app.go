package app

import (
	"database/sql"
	"fmt"
	"log"

	"soccermass/internal/config"
	"soccermass/internal/handlers"
	"soccermass/internal/middleware"
	"soccermass/internal/pdf"
	"soccermass/internal/repositories"
	"soccermass/internal/routes"
	"soccermass/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "soccermass/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	profileRepo := repositories.NewProfileRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	massRepo := repositories.NewMassRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.Auth.Secret)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.DryRun || !cfg.IsProd(),
	)
	alerts := services.NewTelegramAlerts(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)
	receipts := pdf.NewReceiptGenerator(cfg.Files.RootDir)

	accountService := services.NewAccountService(
		profileRepo,
		clubRepo,
		massRepo,
		contactRepo,
		authService,
		tokenService,
		emailService,
		alerts,
		receipts,
		cfg.Auth.APIURL,
	)

	middleware.SetJWTKey(cfg.Auth.Secret)

	// === Handlers ===
	accountHandler := handlers.NewAccountHandler(accountService, cfg.Auth.ClientURL)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, accountHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s (env=%s)", listenAddr, cfg.Env)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}
