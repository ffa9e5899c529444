package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/folioworks/folioworks/handlers"
	"github.com/folioworks/folioworks/internal/admins"
	"github.com/folioworks/folioworks/internal/config"
	contenthandler "github.com/folioworks/folioworks/internal/content/handler"
	"github.com/folioworks/folioworks/internal/content/repository"
	contentservice "github.com/folioworks/folioworks/internal/content/service"
	"github.com/folioworks/folioworks/internal/database"
	"github.com/folioworks/folioworks/internal/messages"
	"github.com/folioworks/folioworks/internal/oidc"
	"github.com/folioworks/folioworks/internal/sessions"
	"github.com/folioworks/folioworks/internal/tokens"
	"github.com/folioworks/folioworks/internal/uploads"
	"github.com/folioworks/folioworks/pkg/logger"
	"github.com/folioworks/folioworks/pkg/metrics"
	"github.com/folioworks/folioworks/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first (LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v upload_host=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.UploadHost.BaseURL != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Redis (sessions, token blacklist, rate limiting, content change bridge)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// MongoDB with retry/backoff to tolerate startup races
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	// Content store: Mongo-backed when available, in-memory otherwise so the
	// public site keeps serving defaults without a database.
	var store repository.Store
	if mongoClient != nil {
		ms := repository.NewMongoStore(mongoClient.Database(cfg.MongoDB.Database))
		if redisClient != nil {
			ms.EnableRedisBridge(ctx, redisClient)
		}
		store = ms
	} else {
		logger.Warnf("no MongoDB available, content served from memory store")
		store = repository.NewMemoryStore()
	}
	contentSvc := contentservice.New(store)
	contenthandler.RegisterPublicRoutes(r, contentSvc)

	// Messages: contact intake + admin view
	var msgRepo messages.Repository
	if mongoClient != nil {
		msgRepo = messages.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("messages"))
	} else {
		msgRepo = messages.NewMemoryRepository()
	}
	// mail forwarding stays nil unless explicitly enabled; the intake flow
	// works either way
	var mailer messages.Mailer
	if cfg.Contact.MailEnabled {
		logger.Warnf("CONTACT_MAIL_ENABLED set but no mailer is wired in this build")
	}
	msgSvc := messages.NewService(msgRepo, mailer, cfg.Contact.ResponseDelay)
	messages.RegisterPublicRoutes(r, msgSvc)

	// Admin accounts and sessions. Redis sessions preferred, Mongo fallback.
	var adminRepo admins.Repository
	if mongoClient != nil {
		adminRepo = admins.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("admins"))
	} else {
		adminRepo = admins.NewMemoryRepository()
	}
	adminSvc := admins.NewService(adminRepo)
	if err := adminSvc.EnsureSeed(ctx, cfg.Admin.SeedEmail, cfg.Admin.SeedPassword); err != nil {
		logger.Warnf("admin seed failed: %v", err)
	}

	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, ""))
		logger.Infof("using Redis for session storage")
	} else if mongoClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("sessions")))
	} else {
		logger.Warnf("no session store available, auth routes not registered")
	}

	if sessionsSvc != nil {
		handlers.NewAuthHandler(cfg, adminSvc, sessionsSvc).Register(r.Group("/"))
	}

	// Verifier for admin routes: OIDC SSO when configured, otherwise locally
	// issued HS256 tokens. ALLOW_INSECURE_TOKEN exists for integration runs.
	var verifier middleware.Verifier
	if cfg.OIDC.Issuer != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && cfg.JWT.Secret != "" {
		verifier = tokens.NewVerifier(cfg.JWT.Secret)
	}
	if verifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure token verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	if verifier != nil {
		admin := r.Group("/api/admin", middleware.AuthMiddleware(verifier))
		contenthandler.RegisterAdminRoutes(admin, contentSvc)
		messages.RegisterAdminRoutes(admin, msgSvc)

		// Uploads: external media host when configured, own MinIO bucket
		// otherwise.
		var uploader uploads.Uploader
		if cfg.UploadHost.BaseURL != "" {
			uploader = uploads.NewClient(cfg.UploadHost.BaseURL, cfg.UploadHost.Preset)
		} else if mediaCfg := uploads.LoadMediaConfig(); mediaCfg.Endpoint != "" {
			media, err := uploads.NewMediaStore(mediaCfg)
			if err != nil {
				logger.Warnf("media store init failed: %v", err)
			} else {
				uploader = media
			}
		}
		if uploader != nil {
			uploads.RegisterAdminRoutes(admin, uploader)
		} else {
			logger.Warnf("no upload backend configured, /api/admin/uploads not registered")
		}
	} else {
		logger.Warnf("no token verifier available, admin routes not registered")
	}

	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the critical dependencies are in place
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["content"] = store != nil
		deps["mongo"] = mongoClient != nil
		deps["sessions"] = sessionsSvc != nil
		if sessionsSvc == nil {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting folioworks backend on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
