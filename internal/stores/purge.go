package stores

import (
	"context"
	"log/slog"
	"time"
)

// PurgeLoop removes expired deny-list entries every interval until ctx is done.
func PurgeLoop(ctx context.Context, s RevokedTokenStore, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.PurgeExpired(ctx, now)
			if err != nil {
				log.ErrorContext(ctx, "purge revoked tokens", "err", err)
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "purged revoked tokens", "count", n)
			}
		}
	}
}
