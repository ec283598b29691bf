package cache

// CatalogTable holds raw catalog API response bodies keyed by request path and query.
const CatalogTable = "catalog_cache"

// CatalogCacheSchema defines the schema for the catalog response cache.
// cached_at is stored as unix seconds.
const CatalogCacheSchema = `
CREATE TABLE IF NOT EXISTS catalog_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_catalog_cached_at ON catalog_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	CatalogCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	CatalogTable: true,
}
