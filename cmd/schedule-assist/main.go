package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/api"
	breaks_service "github.com/SergeyKozhin/schedule-assist/internal/business/breaks"
	"github.com/SergeyKozhin/schedule-assist/internal/business/cascade"
	events_service "github.com/SergeyKozhin/schedule-assist/internal/business/events"
	"github.com/SergeyKozhin/schedule-assist/internal/business/planner"
	preferences_service "github.com/SergeyKozhin/schedule-assist/internal/business/preferences"
	"github.com/SergeyKozhin/schedule-assist/internal/config"
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/database/attendees"
	"github.com/SergeyKozhin/schedule-assist/internal/database/calendars"
	"github.com/SergeyKozhin/schedule-assist/internal/database/categories"
	"github.com/SergeyKozhin/schedule-assist/internal/database/events"
	"github.com/SergeyKozhin/schedule-assist/internal/database/preferences"
	"github.com/SergeyKozhin/schedule-assist/internal/database/reminders"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/SergeyKozhin/schedule-assist/internal/pkg/archive"
	"github.com/SergeyKozhin/schedule-assist/internal/pkg/classifier"
	"github.com/SergeyKozhin/schedule-assist/internal/pkg/jwt"
	"github.com/SergeyKozhin/schedule-assist/internal/pkg/solver"
	"github.com/SergeyKozhin/schedule-assist/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	jwts := jwt.NewManager(config.Secret())

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	preferencesCache := redis.NewPreferencesCache(redisPool, logger, config.PreferencesCacheTTL())

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}
	eventsRepository := events.NewRepository()
	preferencesRepository := preferences.NewRepository()
	categoriesRepository := categories.NewRepository()
	calendarsRepository := calendars.NewRepository()
	remindersRepository := reminders.NewRepository()
	attendeesRepository := attendees.NewRepository()

	archiveStore, err := archive.Connect(ctx, config.NatsURL(), config.PlannerBucket(), logger)
	if err != nil {
		logger.Fatalw("unable to initializae planner archive", "err", err)
	}
	solverClient := solver.NewClient(config.SolverURL(), config.SolverUsername(), config.SolverPassword(), config.SolverTimeout())
	classifierClient := classifier.NewClient(config.ClassifierURL(), config.ClassifierTimeout())

	eventsService := events_service.NewService(db, eventsRepository)
	preferencesService := preferences_service.NewService(db, logger, preferencesRepository, preferencesCache)
	breaksService := breaks_service.NewService(logger, eventsService)

	cascadeService := cascade.NewService(
		db,
		logger,
		eventsService,
		eventsRepository,
		remindersRepository,
		categoriesRepository,
		preferencesService,
		classifierClient,
		config.MinThresholdScore(),
	)

	plannerService := planner.NewService(
		db,
		logger,
		eventsService,
		preferencesService,
		breaksService,
		calendarsRepository,
		attendeesRepository,
		archiveStore,
		solverClient,
		planner.Settings{
			Concurrency: config.AttendeeConcurrency(),
			CallbackURL: config.SolverCallbackURL(),
			Delays: map[model.PlanTier]time.Duration{
				model.PlanTierFree:    config.FreePlanDelay(),
				model.PlanTierPro:     config.ProPlanDelay(),
				model.PlanTierPremium: config.PremiumPlanDelay(),
			},
		},
	)

	api, err := api.NewApi(logger, jwts, plannerService, cascadeService)
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
