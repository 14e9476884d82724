package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"simpleguide/cmd/internal/config"
	"simpleguide/cmd/internal/domain/assets"
	"simpleguide/cmd/internal/domain/database"
	"simpleguide/cmd/internal/domain/database/repository"
	"simpleguide/cmd/internal/domain/policy"
	"simpleguide/cmd/internal/http/handler"
	mw "simpleguide/cmd/internal/http/middleware"
	"simpleguide/cmd/internal/http/render"
	cognitoclient "simpleguide/cmd/internal/infrastructure/aws/cognito"
	"simpleguide/cmd/internal/infrastructure/aws/storage"
	"simpleguide/cmd/internal/infrastructure/disk"
	"simpleguide/cmd/internal/infrastructure/minhareceita"
	"simpleguide/cmd/internal/routes"
	"simpleguide/cmd/internal/service"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/uid"
	"simpleguide/cmd/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			log.Infof("database migrated")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var sub, username, email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register the first administrator for an existing Cognito account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			users := service.NewUserService(repository.NewUserRepository(db), nil, nil, policy.NewUserPolicy())
			user, err := users.CreateSuperuser(sub, username, email)
			if err != nil {
				return fmt.Errorf("failed to create administrator: %w", err)
			}

			log.Infof("administrator %s created with id %d", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "", "Cognito sub of the account")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("sub")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	if err := config.LoadEnvironment(ctx); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	uid.Init(cfg.NodeID)
	return cfg, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Debug: cfg.DBDebug})
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (assets.Storage, error) {
	if cfg.StorageDriver == config.StorageS3 {
		return storage.NewS3Storage(ctx, cfg.S3Region, cfg.S3Bucket)
	}
	return disk.New(cfg.StorageDir)
}

func newLookupCache(ctx context.Context, cfg *config.Config) service.LookupCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("redis at %s is not reachable yet: %v", cfg.RedisAddr, err)
	}
	return minhareceita.NewRedisCache(client, cfg.LookupCacheTTL)
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	validate := validator.New()
	validators.Register(validate)

	// Staff auth
	var cogClient cognitoclient.CognitoInterface
	if cfg.AuthEnabled() {
		cogClient, err = cognitoclient.InitCognitoClient(ctx, cfg.CognitoRegion, cfg.CognitoPoolID, cfg.CognitoClientID)
		if err != nil {
			return err
		}

		if err := utils.InitJWKS(cfg.CognitoRegion, cfg.CognitoPoolID); err != nil {
			return err
		}
	} else {
		log.Warnf("cognito is not configured, the staff API will reject every request")
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// Repos
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	recordPolicy := policy.NewRecordPolicy()
	manager := assets.NewManager(store, subscriberRepo)

	// Services
	categoryService := service.NewCategoryService(categoryRepo, validate, recordPolicy)
	companyService := service.NewCompanyService(companyRepo, categoryRepo, validate, recordPolicy)
	subscriberService := service.NewSubscriberService(subscriberRepo, companyRepo, manager, validate, recordPolicy, cfg.MediaBaseURL)
	listingService := service.NewListingService(subscriberRepo, time.Now, cfg.MediaBaseURL)
	userService := service.NewUserService(userRepo, validate, cogClient, policy.NewUserPolicy())
	lookupService := service.NewLookupService(minhareceita.NewClient(cfg.LookupBaseURL), newLookupCache(ctx, cfg))

	renderer, err := render.New()
	if err != nil {
		return err
	}

	metrics := mw.NewMetrics(prometheus.DefaultRegisterer)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(metrics.Middleware)
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	if cfg.StorageDriver == config.StorageDisk && strings.HasPrefix(cfg.MediaBaseURL, "/") {
		e.Static(strings.TrimSuffix(cfg.MediaBaseURL, "/"), cfg.StorageDir)
	}

	routes.Register(e, &routes.Handlers{
		Listing:    handler.NewListingRoute(listingService, categoryService),
		Categories: handler.NewCategoryDefault(categoryService),
		Companies:  handler.NewCompanyDefault(companyService),
		Subs:       handler.NewSubscriberDefault(subscriberService),
		Users:      handler.NewUserDefault(userService),
		Lookup:     handler.NewLookupRoute(lookupService),
		Util:       handler.NewUtilRoute(sqlDB),
	}, mw.NewAuthMiddleware(&mw.AuthMiddlewareConfig{UserRepo: userRepo}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.RouteNotFound("/*", handler.NotFoundPage)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
