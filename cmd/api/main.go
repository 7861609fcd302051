package main

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"studioportal/internal/audit"
	"studioportal/internal/config"
	"studioportal/internal/database"
	"studioportal/internal/domain/auth"
	"studioportal/internal/domain/client"
	"studioportal/internal/domain/comment"
	"studioportal/internal/domain/content"
	"studioportal/internal/domain/gallery"
	"studioportal/internal/domain/request"
	"studioportal/internal/domain/video"
	"studioportal/internal/middleware"
	jwtsvc "studioportal/internal/pkg/jwt"
	"studioportal/internal/pkg/logger"
	storagelocal "studioportal/internal/storage/local"
	storages3 "studioportal/internal/storage/s3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database migrate failed", zap.Error(err))
	}

	var (
		storage    gallery.ObjectStorage
		localStore *storagelocal.Storage
	)
	s3Client, err := storages3.New(cfg)
	switch {
	case err == nil:
		storage = s3Client
		zlog.Info("object storage: s3", zap.String("bucket", cfg.S3Bucket))
	case errors.Is(err, storages3.ErrNotConfigured) && cfg.AppEnv != "production":
		localStore = storagelocal.New("./uploads", "/static/uploads")
		storage = localStore
		zlog.Warn("object storage not configured, using local disk")
	default:
		zlog.Fatal("object storage init failed", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	auditor := audit.NewRecorder(db, zlog)
	mailer := auth.NewDevConsoleMailer(zlog, cfg.MailerEnabled)

	authService := auth.NewService(auth.NewRepository(db), j, mailer, cfg.ResetCodeTTL)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:     cfg.CookieName,
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
		TTL:      cfg.JWTTTL,
	})

	galleryService := gallery.NewService(gallery.NewRepository(db), storage, zlog)
	galleryHandler := gallery.NewHandler(galleryService, auditor, gallery.Limits{
		MaxFileSize: cfg.MaxFileSize,
		MaxFiles:    cfg.MaxFiles,
	})

	clientHandler := client.NewHandler(client.NewService(client.NewRepository(db)), auditor)
	commentHandler := comment.NewHandler(comment.NewService(comment.NewRepository(db)))
	requestHandler := request.NewHandler(request.NewService(request.NewRepository(db)), auditor)
	videoHandler := video.NewHandler(video.NewService(video.NewRepository(db), storage, zlog), auditor, cfg.MaxVideoSize)
	contentHandler := content.NewHandler(content.NewRepository(db))
	auditHandler := audit.NewHandler(auditor)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Identify(j, cfg.CookieName))

	if localStore != nil {
		r.Static("/static/uploads", localStore.BaseDir())
	}

	// Public surface: identical with or without a token.
	public := r.Group("/public")
	content.RegisterPublicRoutes(public, contentHandler)

	authGroup := r.Group("/auth")
	auth.RegisterRoutes(authGroup, authHandler)

	admin := r.Group("/admin", middleware.AdminOnly())
	{
		gallery.RegisterAdminRoutes(admin, galleryHandler)
		client.RegisterAdminRoutes(admin, clientHandler)
		comment.RegisterAdminRoutes(admin, commentHandler)
		request.RegisterAdminRoutes(admin, requestHandler)
		video.RegisterAdminRoutes(admin, videoHandler)
		content.RegisterAdminRoutes(admin, contentHandler)
		audit.RegisterRoutes(admin, auditHandler)
	}

	user := r.Group("/user", middleware.ClientOnly())
	{
		gallery.RegisterClientRoutes(user, galleryHandler)
		comment.RegisterClientRoutes(user, commentHandler)
		request.RegisterClientRoutes(user, requestHandler)
		video.RegisterClientRoutes(user, videoHandler)
	}

	zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
