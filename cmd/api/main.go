package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tagtrack/internal/audit"
	"tagtrack/internal/config"
	"tagtrack/internal/duty"
	"tagtrack/internal/handler"
	"tagtrack/internal/httpmiddleware"
	"tagtrack/internal/notify"
	"tagtrack/internal/queue"
	"tagtrack/internal/reader"
	"tagtrack/internal/scan"
	"tagtrack/internal/store"
	"tagtrack/internal/student"
	"tagtrack/internal/sysconfig"
	"tagtrack/internal/user"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	var (
		db       *store.DB
		students student.Store
		users    user.Store
		tracker  duty.Tracker
		recorder audit.Recorder
		cfgStore sysconfig.Store
	)

	if cfg.StoreBackend == "memory" {
		students = student.NewMemory()
		users = user.NewMemory()
		tracker = duty.NewMemory()
		recorder = audit.NewMemory()
		cfgStore = sysconfig.NewMemory()
		log.Println("using in-memory stores (STORE_BACKEND=memory)")
	} else {
		var err error
		db, err = store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(context.Background()); err != nil {
			return err
		}
		students = student.NewRepository(db.Client)
		users = user.NewRepository(db.Client)
		tracker = duty.NewRepository(db.Client)
		recorder = audit.NewRepository(db.Client)
		cfgStore = sysconfig.NewRepository(db.Client)
	}

	var redisClient *store.Redis
	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		q = queue.NewRedisQueue(redisClient.Client, "tagtrack:scans")
	}

	var notifier notify.Notifier
	if cfg.NotifyBackend == "memory" {
		notifier = notify.NewBroadcaster()
	} else {
		notifier = notify.NewQueuePublisher(q)
	}

	engine := scan.New(students, tracker, recorder, notifier, cfg.DebounceWindow)
	accounts := user.NewService(users)
	rdr := reader.NewSimReader(8)

	h := handler.New(engine, students, users, accounts, tracker, recorder, cfgStore, rdr, redisClient, handler.TokenConfig{
		Issuer:     cfg.JWTIssuer,
		SigningKey: cfg.JWTSigningKey,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewIPRateLimiter(cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Healthz(func() bool { return db == nil || db.Client.Ping() == nil }))

	h.RegisterRoutes(r, cfg.JWTSigningKey, cfg.JWTIssuer)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// corsMiddleware reflects only origins from the allowlist; the dashboard
// sends credentials, so wildcards are not an option.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	ok := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		ok[o] = true
	}
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (ok["*"] || ok[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
