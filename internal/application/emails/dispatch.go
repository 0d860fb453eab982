package emails

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const dispatchTimeout = 15 * time.Second

// Dispatch runs a notification send in the background with its own timeout.
// Failures are logged and swallowed; the submitting request has already been
// answered by the time the send runs.
func Dispatch(kind string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Error().Err(err).Str("notification", kind).Msg("Error sending notification email")
		}
	}()
}
