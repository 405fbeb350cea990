package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Wall.Cap <= 0 {
		return fmt.Errorf("wall.cap must be > 0 (got %d)", c.Wall.Cap)
	}
	if c.Wall.PageSize <= 0 {
		return fmt.Errorf("wall.page_size must be > 0 (got %d)", c.Wall.PageSize)
	}
	if c.Wall.PageSize > c.Wall.Cap {
		return fmt.Errorf("wall.page_size must not exceed wall.cap (%d > %d)", c.Wall.PageSize, c.Wall.Cap)
	}

	if c.Presence.TTL <= 0 {
		return fmt.Errorf("presence.ttl must be > 0 (got %v)", c.Presence.TTL)
	}
	if c.Presence.SweepInterval <= 0 {
		return fmt.Errorf("presence.sweep_interval must be > 0 (got %v)", c.Presence.SweepInterval)
	}
	switch c.Presence.Identity {
	case PresenceIdentitySession, PresenceIdentityFingerprint:
	default:
		return fmt.Errorf("presence.identity must be %q or %q (got %q)",
			PresenceIdentitySession, PresenceIdentityFingerprint, c.Presence.Identity)
	}

	if err := c.Rewrite.validate(); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("ratelimit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("ratelimit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (r RewriteConfig) validate() error {
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", r.Timeout)
	}
	if r.URL == "" {
		return nil
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must be http or https (got %q)", r.URL)
	}
	return nil
}
