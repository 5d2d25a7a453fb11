package config

import "time"

// Config is the root configuration for a tracker instance.
type Config struct {
	Steam   SteamConfig   `yaml:"steam"`
	Tracker TrackerConfig `yaml:"tracker"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
}

// SteamConfig holds the watched account and Steam Community endpoints.
type SteamConfig struct {
	SteamID     string        `yaml:"steam_id" envconfig:"STEAM_ID"`
	SessionID   string        `yaml:"session_id" envconfig:"STEAM_SESSION_ID"`
	LoginSecure string        `yaml:"login_secure" envconfig:"STEAM_LOGIN_SECURE"`
	BaseURL     string        `yaml:"base_url" envconfig:"STEAM_BASE_URL"`
	CDNBaseURL  string        `yaml:"cdn_base_url" envconfig:"STEAM_CDN_BASE_URL"`
	AppID       int           `yaml:"app_id" envconfig:"STEAM_APP_ID"`
	ContextID   int           `yaml:"context_id" envconfig:"STEAM_CONTEXT_ID"`
	Currency    int           `yaml:"currency" envconfig:"STEAM_CURRENCY"`
	Language    string        `yaml:"language" envconfig:"STEAM_LANGUAGE"`
	Count       int           `yaml:"count" envconfig:"STEAM_INVENTORY_COUNT"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"STEAM_TIMEOUT"`
}

// TrackerConfig holds the detection loop parameters.
type TrackerConfig struct {
	CasePrice     float64       `yaml:"case_price" envconfig:"TRACKER_CASE_PRICE"`
	KeyPrice      float64       `yaml:"key_price" envconfig:"TRACKER_KEY_PRICE"`
	PollInterval  time.Duration `yaml:"poll_interval" envconfig:"TRACKER_POLL_INTERVAL"`
	MetadataDelay time.Duration `yaml:"metadata_delay" envconfig:"TRACKER_METADATA_DELAY"`
	EventBuffer   int           `yaml:"event_buffer" envconfig:"TRACKER_EVENT_BUFFER"`
}

// CacheConfig holds price cache settings.
type CacheConfig struct {
	Type string        `yaml:"type" envconfig:"CACHE_TYPE"` // "memory" or "redis"
	TTL  time.Duration `yaml:"ttl" envconfig:"CACHE_TTL"`

	RedisAddr     string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" envconfig:"REDIS_DB"`
}

// HistoryConfig holds the optional drop log settings.
type HistoryConfig struct {
	Enabled       bool          `yaml:"enabled" envconfig:"HISTORY_ENABLED"`
	BatchSize     int           `yaml:"batch_size" envconfig:"HISTORY_BATCH_SIZE"`
	FlushInterval time.Duration `yaml:"flush_interval" envconfig:"HISTORY_FLUSH_INTERVAL"`
	Database      DBConfig      `yaml:"database"`
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host" envconfig:"HISTORY_DB_HOST"`
	Port     int    `yaml:"port" envconfig:"HISTORY_DB_PORT"`
	Name     string `yaml:"name" envconfig:"HISTORY_DB_NAME"`
	User     string `yaml:"user" envconfig:"HISTORY_DB_USER"`
	Password string `yaml:"password" envconfig:"HISTORY_DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"HISTORY_DB_SSLMODE"`
	MaxConns int    `yaml:"max_conns" envconfig:"HISTORY_DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" envconfig:"HISTORY_DB_MIN_CONNS"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Host string `yaml:"host" envconfig:"SERVER_HOST"`
	Port int    `yaml:"port" envconfig:"SERVER_PORT"`
}
