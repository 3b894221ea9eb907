package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinica-turnos/internal/audit"
	"github.com/BruksfildServices01/clinica-turnos/internal/backup"
	"github.com/BruksfildServices01/clinica-turnos/internal/config"
	dbpkg "github.com/BruksfildServices01/clinica-turnos/internal/db"
	"github.com/BruksfildServices01/clinica-turnos/internal/domain/clinic"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/mercadopago"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/repository"
	"github.com/BruksfildServices01/clinica-turnos/internal/infra/store"
	"github.com/BruksfildServices01/clinica-turnos/internal/logging"
	"github.com/BruksfildServices01/clinica-turnos/internal/timezone"
	ucAdmin "github.com/BruksfildServices01/clinica-turnos/internal/usecase/admin"
	ucPayment "github.com/BruksfildServices01/clinica-turnos/internal/usecase/payment"
)

// app holds what every command needs: config, logger, repository and the
// optional integrations.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	repo     clinic.Repository
	audit    *audit.Dispatcher
	linker   ucPayment.CheckoutLinker
	uploader ucAdmin.Uploader

	closers []func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	format := cfg.LogFormat
	if cfg.IsDev() {
		format = "console"
	}
	log, err := logging.New(cfg.LogLevel, format, "clinica-turnos")
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	timezone.SetDefault(cfg.Timezone)

	a := &app{cfg: cfg, log: log}

	s, err := a.openStore()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repo = repository.NewCollections(s)

	a.audit = audit.NewDispatcher(audit.New(log))
	a.closers = append(a.closers, a.audit.Close)

	if cfg.MPAccessToken != "" {
		linker, err := mercadopago.NewLinker(cfg.MPAccessToken, cfg.MPCurrency)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.linker = linker
	}

	if cfg.S3Bucket != "" {
		uploader, err := backup.NewS3Uploader(backup.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Prefix:          cfg.S3Prefix,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.uploader = uploader
	}

	log.Info("app ready",
		zap.String("store", cfg.StoreDriver),
		zap.Bool("checkout_links", a.linker != nil),
		zap.Bool("backups", a.uploader != nil),
	)

	return a, nil
}

func (a *app) openStore() (store.Store, error) {
	switch a.cfg.StoreDriver {
	case "memory":
		return store.NewMemoryStore(), nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPassword,
			DB:       a.cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return store.NewRedisStore(client, a.cfg.RedisKeyPrefix), nil

	case "postgres":
		db, err := dbpkg.NewDB(a.cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		return store.NewGormStore(db), nil

	default:
		return store.NewFileStore(a.cfg.DataDir)
	}
}

// Close releases resources in reverse order and flushes the logger.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.log != nil {
		_ = a.log.Sync()
	}
}
