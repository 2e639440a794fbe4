package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familydiet/config"
	"familydiet/controllers"
	"familydiet/routes"
	"familydiet/services"
	"familydiet/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/cors"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		slog.Error("database", "err", err)
		os.Exit(1)
	}

	var (
		snsAPI services.SNSAPI
		sesAPI utils.SESAPI
		s3API  utils.S3API
	)
	if cfg.AWSEnabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			slog.Error("aws config", "err", err)
			os.Exit(1)
		}
		if cfg.SNSPlatformARN != "" {
			snsAPI = sns.NewFromConfig(awsCfg)
		}
		if cfg.SESSender != "" {
			sesAPI = ses.NewFromConfig(awsCfg)
		}
		if cfg.S3Bucket != "" {
			s3API = s3.NewFromConfig(awsCfg)
		}
	}

	store := services.NewDietStore(db)
	rt := services.NewRealtimeHub()
	push := services.NewPushService(store, snsAPI, cfg.SNSPlatformARN)
	bus := services.NewEventBus(rt, push)

	daily := services.NewDailyViewService(store, bus)
	grocery := services.NewGroceryService(store, bus,
		utils.NewMailer(sesAPI, cfg.SESSender),
		utils.NewExporter(s3API, cfg.S3Bucket, cfg.S3PublicURL))

	secret := []byte(cfg.JWTSecret)
	r := routes.SetupRouter(routes.Deps{
		JWTSecret: secret,
		Auth:      controllers.NewAuthController(secret, cfg.HouseholdPasscodeHash, cfg.SessionTTL),
		Family:    controllers.NewFamilyController(services.NewFamilyService(store)),
		Plans:     controllers.NewPlanController(services.NewPlanService(store)),
		Daily:     controllers.NewDailyViewController(daily),
		Grocery:   controllers.NewGroceryController(grocery),
		Devices:   controllers.NewDeviceController(push),
		Realtime:  controllers.NewRealtimeController(rt, daily, grocery),
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}
