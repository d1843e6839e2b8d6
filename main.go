package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/talentedge/console-api/audit"
	"github.com/talentedge/console-api/cache"
	"github.com/talentedge/console-api/config"
	"github.com/talentedge/console-api/controller"
	"github.com/talentedge/console-api/dao"
	"github.com/talentedge/console-api/db"
	"github.com/talentedge/console-api/formatter"
	"github.com/talentedge/console-api/integration"
	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/router"
	"github.com/talentedge/console-api/template"
	"github.com/talentedge/console-api/util"
	"github.com/talentedge/console-api/validation"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	gdb, err := db.InitPostgres()
	if err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres(gdb)

	// Initialize Redis; the rate limiter falls back to an in-process window
	// if it is unavailable.
	var attemptStore validation.AttemptStore
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Warn("Redis unavailable, using in-process rate limit window", zap.Error(err))
		attemptStore = validation.NewMemoryAttemptStore()
	} else {
		defer db.CloseRedis(redisClient)
		attemptStore = db.NewRedisAttemptStore(redisClient)
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Audit trail: Elasticsearch when reachable, in-memory otherwise; the
	// per-day file log is always on.
	var auditRepo audit.Repository
	esRepo, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Warn("Elasticsearch unavailable, audit records stay in memory", zap.Error(err))
		auditRepo = audit.NewMemoryRepository()
	} else {
		auditRepo = esRepo
	}
	fileLog, err := audit.NewFileLog(config.GetString("audit.logDir"))
	if err != nil {
		logger.Fatal("Failed to initialize audit file log", zap.Error(err))
	}
	notificationService := util.NewNotificationService(eventBus)
	retention := time.Duration(config.GetInt("audit.retentionDays")) * 24 * time.Hour
	auditor := audit.NewLogger(auditRepo, fileLog, notificationService, retention)
	defer auditor.Stop()

	// Core services
	cacheManager := cache.NewManager(config.GetDuration("cache.cleanupInterval"), config.GetDuration("cache.defaultTTL"))
	defer cacheManager.Stop()

	candidateDAO := dao.NewCandidateDAO(gdb)
	rateLimiter := validation.NewRateLimiter(attemptStore)
	validator := validation.NewEngine(candidateDAO, candidateDAO, rateLimiter)

	interviewDAO := dao.NewInterviewDAO(gdb)
	fetchers := integration.Fetchers{
		Payment:    dao.NewPaymentDAO(gdb),
		Account:    candidateDAO,
		Jobs:       dao.NewJobDAO(gdb),
		Withdrawal: dao.NewWithdrawalDAO(gdb),
		Interview:  interviewDAO,
	}
	limits := validation.WithdrawalLimits{
		Min: config.GetFloat64("withdrawal.minAmount"),
		Max: config.GetFloat64("withdrawal.maxAmount"),
	}
	layer := integration.NewLayer(cacheManager, validator, auditor, eventBus, fetchers, limits, interviewDAO)

	engine := template.NewEngine()
	responseFormatter := formatter.NewFormatter(engine)

	// Initialize controllers
	controllers := controller.InitializeControllers(layer, responseFormatter, auditor)

	// Set up Gin
	r := router.SetupRouter(controllers, attemptStore, 100, time.Minute)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: r,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
