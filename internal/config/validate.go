package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// A validation failure is fatal to startup: the tracker must not start
// with incomplete credentials or non-positive costs.
func (c *Config) Validate() error {
	if c.Steam.SteamID == "" {
		return errors.New("steam.steam_id is required")
	}
	if c.Steam.SessionID == "" {
		return errors.New("steam.session_id is required")
	}
	if c.Steam.LoginSecure == "" {
		return errors.New("steam.login_secure is required")
	}
	if c.Steam.Timeout <= 0 {
		return errors.New("steam.timeout must be positive")
	}
	if c.Steam.Count < 1 {
		return errors.New("steam.count must be >= 1")
	}

	if c.Tracker.CasePrice <= 0 {
		return fmt.Errorf("tracker.case_price must be positive, got %v", c.Tracker.CasePrice)
	}
	if c.Tracker.KeyPrice <= 0 {
		return fmt.Errorf("tracker.key_price must be positive, got %v", c.Tracker.KeyPrice)
	}
	if c.Tracker.PollInterval <= 0 {
		return errors.New("tracker.poll_interval must be positive")
	}
	if c.Tracker.MetadataDelay < 0 {
		return errors.New("tracker.metadata_delay cannot be negative")
	}
	if c.Tracker.EventBuffer < 1 {
		return errors.New("tracker.event_buffer must be >= 1")
	}

	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.type must be memory or redis, got %q", c.Cache.Type)
	}

	if c.History.Enabled {
		if err := c.History.Database.validate("history.database"); err != nil {
			return err
		}
		if c.History.BatchSize < 1 {
			return errors.New("history.batch_size must be >= 1")
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
