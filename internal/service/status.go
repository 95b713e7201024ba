package service

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Status reports the reachability of each backing store and whether the
// optional providers are configured.
type Status struct {
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Memcached string `json:"memcached"`
	Pinning   string `json:"pinning"`
	Ledger    string `json:"ledger"`
	Vision    string `json:"vision"`
}

type StatusService struct {
	db  *gorm.DB
	rdb *redis.Client
	mc  *memcache.Client

	pinningConfigured bool
	ledgerConfigured  bool
	visionConfigured  bool
}

func NewStatusService(
	db *gorm.DB,
	rdb *redis.Client,
	mc *memcache.Client,
	pinningConfigured bool,
	ledgerConfigured bool,
	visionConfigured bool,
) *StatusService {
	return &StatusService{
		db:                db,
		rdb:               rdb,
		mc:                mc,
		pinningConfigured: pinningConfigured,
		ledgerConfigured:  ledgerConfigured,
		visionConfigured:  visionConfigured,
	}
}

func (s *StatusService) Check(ctx context.Context) Status {
	status := Status{
		Database:  "ok",
		Redis:     "ok",
		Memcached: "ok",
		Pinning:   configuredLabel(s.pinningConfigured),
		Ledger:    configuredLabel(s.ledgerConfigured),
		Vision:    configuredLabel(s.visionConfigured),
	}

	if sqlDB, err := s.db.WithContext(ctx).DB(); err != nil {
		status.Database = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		status.Database = err.Error()
	}

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		status.Redis = err.Error()
	}

	if err := s.mc.Ping(); err != nil {
		status.Memcached = err.Error()
	}

	return status
}

func configuredLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "not_configured"
}
