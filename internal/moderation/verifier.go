package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultVerifyInterval = time.Second
	DefaultVerifyAttempts = 5
)

// Verifier polls a ContentProbe until a removed topic disappears or the
// attempt budget runs out. Only the calling dispatch waits on it.
type Verifier struct {
	probe    ContentProbe
	interval time.Duration
	attempts int
	logger   *slog.Logger
}

// NewVerifier falls back to the default interval, attempt count and logger
// for zero values.
func NewVerifier(probe ContentProbe, interval time.Duration, attempts int, logger *slog.Logger) *Verifier {
	if interval <= 0 {
		interval = DefaultVerifyInterval
	}
	if attempts <= 0 {
		attempts = DefaultVerifyAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		probe:    probe,
		interval: interval,
		attempts: attempts,
		logger:   logger.With("component", "moderation"),
	}
}

// VerifyRemoved returns true as soon as the probe reports the topic gone.
// Probe errors count as "not yet visible". After the last attempt, or if ctx
// is done, it returns false.
func (v *Verifier) VerifyRemoved(ctx context.Context, topicID uuid.UUID) bool {
	for attempt := 1; ; attempt++ {
		exists, err := v.probe.TopicExists(ctx, topicID)
		switch {
		case err != nil:
			v.logger.Warn("removal verification probe failed",
				"topic_id", topicID.String(), "attempt", attempt, "error", err)
		case !exists:
			verificationCount.WithLabelValues("visible").Inc()
			return true
		}

		if attempt >= v.attempts {
			break
		}
		timer := time.NewTimer(v.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			verificationCount.WithLabelValues("cancelled").Inc()
			return false
		case <-timer.C:
		}
	}

	verificationCount.WithLabelValues("timed_out").Inc()
	v.logger.Warn("removal not visible after verification attempts",
		"topic_id", topicID.String(), "attempts", v.attempts)
	return false
}
