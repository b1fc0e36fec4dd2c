package ports

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verity/internal/governance/models"
	"verity/pkg/platform/audit"
	"verity/pkg/requestcontext"
)

type recordingPublisher struct {
	events []audit.Event
	err    error
}

func (p *recordingPublisher) Emit(_ context.Context, event audit.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func TestLogAudit(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	t.Run("populates event fields from attrs and context", func(t *testing.T) {
		ctx := requestcontext.WithTime(context.Background(), now)
		ctx = requestcontext.WithRequestID(ctx, "req-1")
		pub := &recordingPublisher{}

		LogAudit(ctx, nil, pub, audit.EventEnforcementCreated,
			"subject", "BRAND:acme",
			"decision", string(models.ActionWarning),
			"reason", "score 60",
			"score", 60,
		)

		require.Len(t, pub.events, 1)
		ev := pub.events[0]
		assert.Equal(t, audit.CategoryGovernance, ev.Category)
		assert.Equal(t, "enforcement_created", ev.Action)
		assert.Equal(t, "BRAND:acme", ev.Subject)
		assert.Equal(t, "WARNING", ev.Decision)
		assert.Equal(t, "score 60", ev.Reason)
		assert.Equal(t, "req-1", ev.RequestID)
		assert.Equal(t, models.TriggeredBySystem, ev.ActorID)
		assert.Equal(t, now, ev.Timestamp)
		assert.Equal(t, "60", ev.Attributes["score"])
	})

	t.Run("uses the acting operator when present", func(t *testing.T) {
		ctx := requestcontext.WithActorID(context.Background(), "ops@verity")
		pub := &recordingPublisher{}

		LogAudit(ctx, nil, pub, audit.EventEscalationStatusChanged, "subject", "complaint:1")

		require.Len(t, pub.events, 1)
		assert.Equal(t, "ops@verity", pub.events[0].ActorID)
		assert.Equal(t, audit.CategoryCase, pub.events[0].Category)
	})

	t.Run("publisher failure is logged, not returned", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		pub := &recordingPublisher{err: errors.New("sink down")}

		LogAudit(context.Background(), logger, pub, audit.EventTrustEvaluated, "subject", "USER:u1")

		assert.Contains(t, buf.String(), "log_type=audit")
		assert.Contains(t, buf.String(), "failed to emit audit event")
	})

	t.Run("nil publisher only logs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		LogAudit(context.Background(), logger, nil, audit.EventReputationRefreshed, "subject", "BRAND:acme")

		assert.Contains(t, buf.String(), "event=reputation_refreshed")
	})
}
