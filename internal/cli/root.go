package cli

import (
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/config"
	"github.com/quietloop/rhythm/internal/service"
	"github.com/quietloop/rhythm/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Service *service.Service
	Config  *config.Config
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return time.Now().In(c.Config.Location())
}

// ParseDay validates a YYYY-MM-DD string in the configured timezone. An
// empty string means today.
func (c *Context) ParseDay(s string) (time.Time, error) {
	if s == "" {
		return c.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, c.Config.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatMinutes renders a minute count as "1h 05m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
