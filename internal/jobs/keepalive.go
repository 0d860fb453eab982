package jobs

import (
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StartKeepalive schedules a self-ping of the health endpoint every 14
// minutes, keeping free-tier hosting from idling the instance. The result is
// logged and never fatal. Returns nil when no target URL is configured.
func StartKeepalive(baseURL string) *cron.Cron {
	if baseURL == "" {
		return nil
	}
	target := fmt.Sprintf("%s/api/health", baseURL)
	client := &http.Client{Timeout: 10 * time.Second}

	c := cron.New()
	c.AddFunc("*/14 * * * *", func() {
		resp, err := client.Get(target)
		if err != nil {
			log.Warn().Err(err).Str("url", target).Msg("Keepalive ping failed")
			return
		}
		resp.Body.Close()
		log.Info().Int("status", resp.StatusCode).Str("url", target).Msg("Keepalive ping")
	})
	c.Start()
	log.Info().Str("url", target).Msg("Keepalive job started")
	return c
}
