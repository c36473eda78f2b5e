package config

import "time"

// ServiceConfig holds connection and server settings.
type ServiceConfig struct {
	Port               string
	Debug              bool
	MySQLDSN           string
	RedisURL           string
	CacheBackend       string
	NATSURL            string
	NATSWorkers        int
	QdrantURL          string
	QdrantAPIKey       string
	VectorBackend      string
	VectorPersistDir   string
	JWTSecret          string
	CORSOrigins        []string
	RateLimitPerMinute int
	HTTPTimeout        time.Duration
}

// LoadServiceConfig reads server, storage and transport settings.
func LoadServiceConfig() ServiceConfig {
	origins := parseCSV(GetSetting("cors_origins", "CORS_ORIGINS", "http://localhost:3000"))

	return ServiceConfig{
		Port:               GetSetting("port", "PORT", "8000"),
		Debug:              getBoolSetting("debug", "DEBUG", false),
		MySQLDSN:           GetSetting("mysql_dsn", "MYSQL_DSN", ""),
		RedisURL:           GetSetting("redis_url", "REDIS_URL", "redis://localhost:6379"),
		CacheBackend:       GetSetting("cache_backend", "CACHE_BACKEND", "redis"),
		NATSURL:            GetSetting("nats_url", "NATS_URL", ""),
		NATSWorkers:        getIntSetting("nats_workers", "NATS_WORKERS", 8),
		QdrantURL:          GetSetting("qdrant_url", "QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       GetSetting("qdrant_api_key", "QDRANT_API_KEY", ""),
		VectorBackend:      GetSetting("vector_backend", "VECTOR_BACKEND", "qdrant"),
		VectorPersistDir:   GetSetting("vector_persist_dir", "VECTOR_PERSIST_DIR", ""),
		JWTSecret:          GetSetting("jwt_secret", "JWT_SECRET", ""),
		CORSOrigins:        origins,
		RateLimitPerMinute: getIntSetting("rate_limit_per_minute", "RATE_LIMIT_PER_MINUTE", 60),
		HTTPTimeout:        time.Duration(getIntSetting("http_timeout_seconds", "HTTP_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}
