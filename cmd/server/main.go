// Command server runs the quote API.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"notary-pricing/adapters/cache"
	"notary-pricing/adapters/maps"
	"notary-pricing/adapters/storage"
	"notary-pricing/api"
	"notary-pricing/core/discount"
	"notary-pricing/core/dynamic"
	"notary-pricing/core/engine"
	"notary-pricing/core/kv"
	"notary-pricing/core/rates"
	"notary-pricing/core/surcharge"
	"notary-pricing/core/travel"
	"notary-pricing/internal/config"
	"notary-pricing/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatal("configuration error", zap.Error(err))
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Logger.Fatal("logging setup failed", zap.Error(err))
	}
	defer logging.Sync()
	log := logging.Logger

	table := rates.Default()
	if cfg.RateFile != "" {
		table, err = rates.LoadFile(cfg.RateFile)
		if err != nil {
			log.Fatal("rate file load failed", zap.String("path", cfg.RateFile), zap.Error(err))
		}
		log.Info("rate table loaded from file", zap.String("path", cfg.RateFile))
	}

	var store kv.Store
	if cfg.RedisAddr != "" {
		r := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.Ping(ctx); err != nil {
			log.Fatal("redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
		defer r.Close()
		store = r
		log.Info("redis cache connected", zap.String("addr", cfg.RedisAddr))
	} else {
		store = cache.NewMemory()
		log.Warn("REDIS_ADDR not set, using in-memory cache")
	}

	var provider travel.DistanceProvider
	if cfg.GoogleMapsAPIKey != "" {
		provider, err = maps.NewProvider(cfg.GoogleMapsAPIKey, cfg.BaseLocation, log)
		if err != nil {
			log.Fatal("maps client setup failed", zap.Error(err))
		}
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set, travel fees use the fallback estimate")
	}

	var recorder engine.Recorder
	if cfg.QuoteStoreDir != "" {
		fs, err := storage.NewFileStore(cfg.QuoteStoreDir)
		if err != nil {
			log.Fatal("quote store setup failed", zap.Error(err))
		}
		recorder = fs
	}

	eng := engine.New(engine.Config{
		Rates:      table,
		Travel:     travel.NewCalculator(table, provider, log),
		Discounts:  discount.NewCalculator(discount.DefaultAmounts(), table, store, log),
		Surcharges: surcharge.DefaultSchedule(),
		Adjuster:   dynamic.NewAdjuster(store, nil, dynamic.DefaultZones(), log),
		Cache:      store,
		Recorder:   recorder,
		BaseZIP:    cfg.BaseZIP,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewServer(eng, table, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("quote API listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
