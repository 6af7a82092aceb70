package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/shubham1234-glitch/Timesheet-sub000/api/swagger"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/handler"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/middleware"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/repository"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/cache"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/config"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/database"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/jobs"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/logger"
	corsmiddleware "github.com/shubham1234-glitch/Timesheet-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/shubham1234-glitch/Timesheet-sub000/pkg/middleware/requestid"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/storage"
)

// @title Timesheet API
// @version 1.0.0
// @description Timesheet, leave and task tracking service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.MasterData.CacheTTL, logr, false)
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.MasterData.CacheTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	blobs, err := storage.NewLocalStorage(cfg.Attachments.StorageDir, cfg.Attachments.BaseURL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init attachment storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Attachments.SignedURLSecret, cfg.Attachments.SignedURLTTL)
	downloadPath := cfg.APIPrefix + "/attachments"
	attachmentSvc := service.NewAttachmentService(attachmentRepo, blobs, signer, downloadPath, cfg.Attachments.MaxFileSizeBytes, logr)

	validate := validator.New()

	var auditSvc *service.AuditService
	auditQueue := jobs.NewQueue("audit", func(ctx context.Context, job jobs.Job) error {
		return auditSvc.Handle(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		Logger:     logr,
	})
	auditSvc = service.NewAuditService(auditQueue, userRepo, logr)

	cleanupQueue := jobs.NewQueue("attachment-cleanup", attachmentSvc.HandleCleanup, jobs.QueueConfig{Workers: 1, Logger: logr})

	authSvc := service.NewAuthService(userRepo, auditSvc, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "timesheet-api",
	})
	timesheetSvc := service.NewTimesheetService(
		timesheetRepo, taskRepo, ticketRepo, activityRepo,
		attachmentSvc, auditSvc, metricsSvc, validate, logr,
		cfg.Timesheet.OvertimeThresholdHours, cfg.Timesheet.MaxDailyHours,
	)
	leaveSvc := service.NewLeaveService(leaveRepo, attachmentSvc, auditSvc, metricsSvc, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, cacheSvc, auditSvc, validate, logr)
	ticketSvc := service.NewTicketService(ticketRepo, logr)
	activitySvc := service.NewActivityService(activityRepo, cacheSvc, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, leaveRepo, userRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	timesheetHandler := handler.NewTimesheetHandler(timesheetSvc)
	leaveHandler := handler.NewLeaveHandler(leaveSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	ticketHandler := handler.NewTicketHandler(ticketSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	attachmentHandler := handler.NewAttachmentHandler(attachmentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditQueue.Start(ctx)
	defer auditQueue.Stop()
	cleanupQueue.Start(ctx)
	defer cleanupQueue.Stop()

	go scheduleAttachmentCleanup(ctx, cleanupQueue, cfg.Attachments, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/status", metricsHandler.Status)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	// Attachment downloads authenticate through the signed token itself.
	r.GET(downloadPath+"/:token", middleware.OptionalJWT(authSvc), attachmentHandler.Download)

	api := r.Group(cfg.APIPrefix, middleware.JWT(authSvc))
	{
		api.GET("/get_timesheet_entries", timesheetHandler.List)
		api.GET("/get_timesheet_entry/:entry_id", timesheetHandler.Get)
		api.POST("/enter_timesheet", timesheetHandler.Enter)
		api.POST("/submit_timesheet", timesheetHandler.Submit)
		api.POST("/approve_timesheet", middleware.RequireApprover(), timesheetHandler.Decide)

		api.GET("/get_leave_applications", leaveHandler.List)
		api.POST("/apply_leave", leaveHandler.Apply)
		api.POST("/approve_leave", middleware.RequireApprover(), leaveHandler.Decide)

		api.GET("/get_epics", taskHandler.ListEpics)
		api.GET("/get_epics/:epic_id", taskHandler.GetEpic)
		api.GET("/get_tasks", taskHandler.ListTasks)
		api.GET("/get_tasks/available", taskHandler.ListAvailable)
		api.GET("/get_task/:task_id", taskHandler.GetTask)
		api.GET("/get_subtask/:subtask_id", taskHandler.GetSubtask)
		api.POST("/create_task", taskHandler.Create)
		api.POST("/assign_task_to_self/:task_id", taskHandler.AssignToSelf)
		api.DELETE("/delete_task/:epic_id/:task_id", middleware.RequireApprover(), taskHandler.Delete)
		api.GET("/get_predefined_epics", taskHandler.ListTemplates)
		api.GET("/get_predefined_epics/:id", taskHandler.GetTemplate)

		api.GET("/get_tickets", ticketHandler.List)
		api.GET("/get_ticket/:ticket_code", ticketHandler.Get)

		api.GET("/get_activity", activityHandler.List)
		api.GET("/get_outdoor_activities", activityHandler.ListOutdoor)

		if cfg.Dashboard.Enabled {
			api.GET("/get_dashboard_data", dashboardHandler.Personal)
			api.GET("/get_team_dashboard_data", middleware.RequireApprover(), dashboardHandler.Team)
			api.GET("/get_super_admin_dashboard_data", middleware.RequireRoles(models.RoleSuperAdmin), dashboardHandler.SuperAdmin)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}

// scheduleAttachmentCleanup periodically enqueues an orphan sweep carrying
// the retention cutoff as payload.
func scheduleAttachmentCleanup(ctx context.Context, queue *jobs.Queue, cfg config.AttachmentsConfig, logr *zap.Logger) {
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job := jobs.Job{
				ID:      uuid.NewString(),
				Type:    "attachment_cleanup",
				Payload: time.Now().UTC().Add(-cfg.RetentionTTL),
			}
			if err := queue.Enqueue(job); err != nil {
				logr.Sugar().Warnw("failed to enqueue attachment cleanup", "error", err)
			}
		}
	}
}
