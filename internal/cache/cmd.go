package cache

import (
	"log/slog"

	"github.com/spf13/viper"
)

// ClearCmd represents the cache clear subcommand
type ClearCmd struct {
	ExpiredOnly bool `help:"Only remove entries older than the configured cache TTL"`
}

func (c *ClearCmd) Run() error {
	dbPath := viper.GetString("cache.dbfile")
	slog.Info("Clearing catalog cache", "database", dbPath, "expired_only", c.ExpiredOnly)

	cacheDB, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = cacheDB.Close() }()

	var removed int64
	if c.ExpiredOnly {
		ttl := viper.GetDuration("cache.ttl")
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		removed, err = cacheDB.ClearExpired(CatalogTable, ttl)
	} else {
		removed, err = cacheDB.InvalidateSource(CatalogTable)
	}
	if err != nil {
		return err
	}

	slog.Info("Catalog cache cleared", "rows_deleted", removed)
	return nil
}
