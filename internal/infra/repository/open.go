package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/config"
	"github.com/BruksfildServices01/appointease/internal/db"
	domain "github.com/BruksfildServices01/appointease/internal/domain/booking"
	"github.com/BruksfildServices01/appointease/internal/infra/kv"
)

// Open monta o Repository escolhido por STORE_DRIVER.
// O closer libera conexões e arquivos do backend.
func Open(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
) (domain.Repository, func() error, error) {

	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case "", "file":
		store, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", cfg.DataDir).Msg("using file store")
		return NewBookingKVRepository(store), noop, nil

	case "memory":
		log.Warn().Msg("using in-memory store, bookings are lost on restart")
		return NewBookingKVRepository(kv.NewMemoryStore()), noop, nil

	case "redis":
		store := kv.NewRedisStore(kv.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis store")
		return NewBookingKVRepository(store), store.Close, nil

	case "s3":
		store, err := kv.NewS3Store(kv.S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("using s3 store")
		return NewBookingKVRepository(store), noop, nil

	case "sqlite":
		sqlDB, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite store")
		return NewBookingSQLiteRepository(sqlDB), sqlDB.Close, nil

	case "postgres":
		gdb, err := db.NewDB(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("using postgres store")
		return NewBookingGormRepository(gdb), sqlDB.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
