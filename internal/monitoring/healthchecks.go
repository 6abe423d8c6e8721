// Package monitoring runs background health probes for optional analysis
// collaborators.
package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// HealthChecker is any collaborator that can answer a liveness probe.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// MonitorCollaboratorHealth probes the collaborator on an interval and keeps
// the shared flag up to date until ctx is cancelled.
func MonitorCollaboratorHealth(ctx context.Context, name string, checker HealthChecker, healthy *atomic.Bool) {
	ticker := time.NewTicker(HEALTHCHECK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := checker.Healthy(ctx)
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Collaborator is unhealthy",
					slog.String("collaborator", name))
			}
		}
	}
}
