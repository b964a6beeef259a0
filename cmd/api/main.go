package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/practice-kit/practice-service/internal/api/http"
	"github.com/practice-kit/practice-service/internal/api/http/handlers"
	"github.com/practice-kit/practice-service/internal/auth"
	"github.com/practice-kit/practice-service/internal/config"
	"github.com/practice-kit/practice-service/internal/events"
	"github.com/practice-kit/practice-service/internal/observability"
	"github.com/practice-kit/practice-service/internal/persistence"
	"github.com/practice-kit/practice-service/internal/repository"
	"github.com/practice-kit/practice-service/internal/service"
	"github.com/practice-kit/practice-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	billingRepo := repository.NewBillingRepository(pool)
	incomeRepo := repository.NewIncomeRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	changeFeed := events.NewChangeFeed(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:         staffRepo,
		PasswordResetRepo: resetRepo,
	})
	staffService := service.NewStaffService(*cfg, service.StaffDependencies{
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	studentService := service.NewStudentService(service.StudentDependencies{
		StudentRepo: studentRepo,
		StaffRepo:   staffRepo,
		Dispatcher:  dispatcher,
	})
	scheduleService := service.NewScheduleService(service.ScheduleDependencies{
		EventRepo:   eventRepo,
		StudentRepo: studentRepo,
		Dispatcher:  dispatcher,
	})
	billingService := service.NewBillingService(cfg.Billing, service.BillingDependencies{
		BillingRepo: billingRepo,
		StudentRepo: studentRepo,
		Dispatcher:  dispatcher,
	})
	financeService := service.NewFinanceService(cfg.Billing, service.FinanceDependencies{
		BillingRepo: billingRepo,
		IncomeRepo:  incomeRepo,
		ExpenseRepo: expenseRepo,
		StudentRepo: studentRepo,
		StaffRepo:   staffRepo,
		EventRepo:   eventRepo,
		Dispatcher:  dispatcher,
		Cache:       redis.Client,
	})
	noticeService := service.NewNoticeService(service.NoticeDependencies{
		NoticeRepo: noticeRepo,
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:   taskRepo,
		StaffRepo:  staffRepo,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		ChangeFeed: changeFeed,
		Finance:    financeService,
		Logger:     logger,
	})
	worker.StartNotificationWorker(notificationService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Students:       handlers.NewStudentsHandler(studentService),
		Schedule:       handlers.NewScheduleHandler(scheduleService),
		Billing:        handlers.NewBillingHandler(billingService, financeService),
		Notices:        handlers.NewNoticesHandler(noticeService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Changes:        handlers.NewChangesHandler(changeFeed),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
