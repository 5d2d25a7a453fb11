package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL        = "https://steamcommunity.com"
	DefaultCDNBaseURL     = "https://cdn.steamcommunity.com"
	DefaultAppID          = 730 // CS2
	DefaultContextID      = 2
	DefaultCurrency       = 5 // RUB
	DefaultLanguage       = "russian"
	DefaultInventoryCount = 75
	DefaultSteamTimeout   = 5 * time.Second
	DefaultPollInterval   = 3 * time.Second
	DefaultMetadataDelay  = 5 * time.Second
	DefaultEventBuffer    = 64
	DefaultCacheType      = "memory"
	DefaultCacheTTL       = 5 * time.Minute
	DefaultRedisAddr      = "localhost:6379"
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 4
	DefaultMinConns       = 1
	DefaultBatchSize      = 16
	DefaultFlushInterval  = 2 * time.Second
	DefaultServerHost     = "0.0.0.0"
	DefaultServerPort     = 8080
)

func (c *Config) applyDefaults() {
	// Steam defaults
	if c.Steam.BaseURL == "" {
		c.Steam.BaseURL = DefaultBaseURL
	}
	if c.Steam.CDNBaseURL == "" {
		c.Steam.CDNBaseURL = DefaultCDNBaseURL
	}
	if c.Steam.AppID == 0 {
		c.Steam.AppID = DefaultAppID
	}
	if c.Steam.ContextID == 0 {
		c.Steam.ContextID = DefaultContextID
	}
	if c.Steam.Currency == 0 {
		c.Steam.Currency = DefaultCurrency
	}
	if c.Steam.Language == "" {
		c.Steam.Language = DefaultLanguage
	}
	if c.Steam.Count == 0 {
		c.Steam.Count = DefaultInventoryCount
	}
	if c.Steam.Timeout == 0 {
		c.Steam.Timeout = DefaultSteamTimeout
	}

	// Tracker defaults
	if c.Tracker.PollInterval == 0 {
		c.Tracker.PollInterval = DefaultPollInterval
	}
	if c.Tracker.MetadataDelay == 0 {
		c.Tracker.MetadataDelay = DefaultMetadataDelay
	}
	if c.Tracker.EventBuffer == 0 {
		c.Tracker.EventBuffer = DefaultEventBuffer
	}

	// Cache defaults
	if c.Cache.Type == "" {
		c.Cache.Type = DefaultCacheType
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}

	// History defaults
	if c.History.BatchSize == 0 {
		c.History.BatchSize = DefaultBatchSize
	}
	if c.History.FlushInterval == 0 {
		c.History.FlushInterval = DefaultFlushInterval
	}
	if c.History.Database.Port == 0 {
		c.History.Database.Port = DefaultDBPort
	}
	if c.History.Database.SSLMode == "" {
		c.History.Database.SSLMode = DefaultDBSSLMode
	}
	if c.History.Database.MaxConns == 0 {
		c.History.Database.MaxConns = DefaultMaxConns
	}
	if c.History.Database.MinConns == 0 {
		c.History.Database.MinConns = DefaultMinConns
	}

	// Server defaults
	if c.Server.Host == "" {
		c.Server.Host = DefaultServerHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}
