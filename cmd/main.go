package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/petilan/petilan_category_service/api"
	"github.com/petilan/petilan_category_service/config"
	"github.com/petilan/petilan_category_service/events"
	"github.com/petilan/petilan_category_service/pkg/cache"
	"github.com/petilan/petilan_category_service/pkg/kafka"
	"github.com/petilan/petilan_category_service/pkg/logger"
	"github.com/petilan/petilan_category_service/services"
	"github.com/petilan/petilan_category_service/storage"
)

func main() {

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loggerLevel := logger.LevelInfo
	switch cfg.Environment {
	case config.DebugMode, config.TestMode:
		loggerLevel = logger.LevelDebug
	}
	if cfg.LogLevel != "" {
		loggerLevel = cfg.LogLevel
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)

	log.Info("config loaded", logger.String("environment", cfg.Environment))

	postgresURL := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresDatabase,
	)

	psqlConn, err := sqlx.Connect("postgres", postgresURL)
	if err != nil {
		log.Error("postgres", logger.Error(err))
		return
	}
	defer psqlConn.Close()

	strg := storage.NewStoragePg(log, psqlConn)

	kafkaClient, err := kafka.NewKafka(ctx, cfg, log)
	if err != nil {
		log.Error("kafka", logger.Error(err))
		return
	}

	viewCache := cache.New(time.Now)

	svc := services.NewCategoryService(log, strg, viewCache, kafkaClient, cfg)
	breedSync := services.NewBreedSync(log, strg, viewCache, kafkaClient, cfg)

	pubsubServer := events.NewPubSubServer(log, kafkaClient, strg, svc, breedSync)

	seeded, err := svc.SeedDefaults(ctx)
	if err != nil {
		log.Error("could not seed default categories", logger.Error(err))
		return
	}
	if seeded > 0 {
		log.Info("seeded default root categories", logger.Int("count", seeded))
	}

	pubsubServer.Run()

	if cfg.SweepEnabled {
		go runUsageSweeper(ctx, log, cfg, svc)
	}

	router := api.New(api.Options{
		Log:  log,
		Cfg:  cfg,
		Svc:  svc,
		Sync: breedSync,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s%s", cfg.HttpHost, cfg.HttpPort),
		Handler: router,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-c
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*15)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("error while shutdown http server", logger.Error(err))
		}

		if err := kafkaClient.Shutdown(); err != nil {
			log.Error("error while shutdown pub sub server", logger.Error(err))
		}

		log.Info("server stopped gracefully")
	}()

	log.Info("http server starting", logger.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("serve", logger.Error(err))
	}
}

// runUsageSweeper periodically recounts every category so a missed listing
// event heals within one sweep period.
func runUsageSweeper(ctx context.Context, log logger.Logger, cfg config.Config, svc services.CategoryServiceI) {
	ticker := time.NewTicker(cfg.SweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.SweepUsage(ctx); err != nil {
				log.Error("usage sweep failed", logger.Error(err))
			}
		}
	}
}
