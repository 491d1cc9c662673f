package app

import (
	"errors"
	"fmt"
	"time"

	"templhub_backend/internal/auth"
	"templhub_backend/internal/config"
	"templhub_backend/internal/email"
	"templhub_backend/internal/handlers"
	"templhub_backend/internal/logger"
	"templhub_backend/internal/middleware"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/routes"
	"templhub_backend/internal/services"
	"templhub_backend/internal/storage"
	"templhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokenIssuer := auth.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	userRepo := repositories.NewUserRepository(gormDB)

	serviceContainer := initializeServices(cfg, gormDB, userRepo, tokenIssuer, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)

	authMW := middleware.AuthMiddleware(tokenIssuer, userRepo)
	routes.SetupRoutes(ginRouter, appHandlers, authMW)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	userRepo repositories.UserRepository,
	tokenIssuer *auth.TokenIssuer,
	storageInstance storage.Storage,
) *services.ServiceContainer {
	templateManager := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := templateManager.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("Failed to load email templates, using built-ins", "error", err)
		}
	}

	emailProvider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	}, templateManager, cfg.OTP.TTLMinutes)

	codeRepo := repositories.NewOneTimeCodeRepository(gormDB)
	templateRepo := repositories.NewTemplateRepository(gormDB)
	taxonomyRepo := repositories.NewTaxonomyRepository(gormDB)
	creditRepo := repositories.NewCreditRepository(gormDB)
	downloadRepo := repositories.NewDownloadRepository(gormDB)

	limits := services.UploadLimits{
		MaxSize:        cfg.Upload.MaxSize,
		MaxArchiveSize: cfg.Upload.MaxArchiveSize,
		AllowedTypes:   cfg.Upload.AllowedTypes,
	}

	otpService := services.NewOTPService(codeRepo, emailProvider, services.OTPConfig{
		TTL:      time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
		Digits:   cfg.OTP.Digits,
		TestMode: cfg.OTP.TestMode,
		TestCode: cfg.OTP.TestCode,
	})
	authService := services.NewAuthService(userRepo, otpService, tokenIssuer, emailProvider, storageInstance, limits)
	templateService := services.NewTemplateService(templateRepo, creditRepo, storageInstance, limits)
	taxonomyService := services.NewTaxonomyService(taxonomyRepo)
	creditService := services.NewCreditService(creditRepo, templateRepo)
	downloadService := services.NewDownloadService(downloadRepo, templateRepo, userRepo, emailProvider, services.DownloadConfig{
		FreeLimit: cfg.Download.FreeLimit,
		LinkBase:  cfg.Download.LinkBase,
	})

	return &services.ServiceContainer{
		AuthService:     authService,
		OTPService:      otpService,
		TemplateService: templateService,
		TaxonomyService: taxonomyService,
		CreditService:   creditService,
		DownloadService: downloadService,
	}
}

func initializeHandlers(svc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, svc.AuthService),
		UserHandler:     handlers.NewUserHandler(baseHandler, svc.AuthService, svc.DownloadService),
		TemplateHandler: handlers.NewTemplateHandler(baseHandler, svc.TemplateService, svc.DownloadService),
		TaxonomyHandler: handlers.NewTaxonomyHandler(baseHandler, svc.TaxonomyService),
		CreditHandler:   handlers.NewCreditHandler(baseHandler, svc.CreditService),
		HealthHandler:   handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.OneTimeCode{},
		&models.TemplateType{},
		&models.SubCategory{},
		&models.SoftwareType{},
		&models.IndustryType{},
		&models.Template{},
		&models.SourceFile{},
		&models.SliderImage{},
		&models.PreviewImage{},
		&models.PreviewMobileImage{},
		&models.Credit{},
		&models.DownloadHistory{},
	)
}

// seedFirstAdmin создает первого администратора, если его еще нет
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
