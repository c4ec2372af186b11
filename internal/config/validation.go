package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Validate rejects configurations the server or client cannot run with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}
	if c.Server.RateLimitRPM < 1 {
		return errors.New("server.rate_limit_rpm must be positive")
	}

	if c.Database.Host == "" {
		return errors.New("database.host must be set")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname must be set")
	}

	if c.Logging.MaxSize < 1 {
		return errors.New("logging.max_size must be at least 1 MB")
	}

	if _, err := url.ParseRequestURI(c.Client.ServerURL); err != nil {
		return fmt.Errorf("invalid client.server_url: %w", err)
	}
	if c.Client.SaveThrottleMS < 0 {
		return errors.New("client.save_throttle_ms must not be negative")
	}
	if c.Client.QueueSize < 1 {
		return errors.New("client.queue_size must be positive")
	}

	return nil
}
