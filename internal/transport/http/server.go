package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"medilog-backend/internal/config"
	"medilog-backend/internal/database"
	"medilog-backend/internal/engine"
	"medilog-backend/internal/handler"
	"medilog-backend/internal/push"
	appredis "medilog-backend/internal/redis"
	"medilog-backend/internal/repository"
	"medilog-backend/internal/runlock"
	"medilog-backend/internal/scheduler"
	"medilog-backend/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Run lock (Redis when configured, otherwise unguarded)
	var locker runlock.Locker = runlock.NoopLocker{}
	if cfg.RedisURL != "" {
		redisClient, err := appredis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}

		locker = runlock.NewRedisLocker(redisClient.Client, 10*time.Minute)
		log.Println("Run lock backed by Redis")
	} else {
		log.Println("REDIS_URL not set, running without distributed run lock")
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	checkupRepo := repository.NewCheckupRepository(db)
	careRepo := repository.NewCareRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// 5. Alert engine
	sender := push.NewWebPushSender(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	if !sender.Configured() {
		log.Println("VAPID keys not configured, push deliveries will fail")
	}

	thresholds := engine.Thresholds{
		CriticalStockDays: cfg.CriticalStockDays,
		LowStockDays:      cfg.LowStockDays,
		ExpiryWindowDays:  cfg.ExpiryWindowDays,
		StockSilence:      time.Duration(cfg.StockSilenceDays) * 24 * time.Hour,
		CheckupLeadDays:   cfg.CheckupLeadDays,
		CheckupSilence:    time.Duration(cfg.CheckupSilenceDays) * 24 * time.Hour,
	}

	dispatcher := engine.NewDispatcher(subscriptionRepo, sender)
	coordinator := engine.NewCoordinator(
		medicationRepo,
		checkupRepo,
		engine.NewEvaluator(thresholds),
		engine.NewRecipientResolver(careRepo),
		dispatcher,
	)

	// 6. Services
	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo)
	medicationService := service.NewMedicationService(medicationRepo)
	checkupService := service.NewCheckupService(checkupRepo)
	careService := service.NewCareService(careRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, dispatcher)

	// 7. Handlers and routes
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService, cfg),
		MedicationHandler:   handler.NewMedicationHandler(medicationService),
		CheckupHandler:      handler.NewCheckupHandler(checkupService),
		CareHandler:         handler.NewCareHandler(careService),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionService, cfg),
		CronHandler:         handler.NewCronHandler(coordinator, locker, cfg),
		JWTSecret:           cfg.JWTSecret,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 8. Optional in-process scheduler
	if cfg.CronInterval > 0 {
		sched := scheduler.New(coordinator, locker, cfg.CronInterval)
		sched.Start(ctx)
		defer sched.Stop()
	}

	// 9. Serve
	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on :%s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
		return err
	}
	return nil
}
