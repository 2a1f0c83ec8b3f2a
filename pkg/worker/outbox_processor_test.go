package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type fakeOutboxRepo struct {
	events  []*model.OutboxEvent
	failed  map[uuid.UUID]error
	deleted time.Time
}

func (r *fakeOutboxRepo) ProcessPending(ctx context.Context, limit, maxAttempts int, handle func(context.Context, *model.OutboxEvent) error) (int, error) {
	r.failed = map[uuid.UUID]error{}
	n := 0
	for i, evt := range r.events {
		if i >= limit {
			break
		}
		if err := handle(ctx, evt); err != nil {
			r.failed[evt.ID] = err
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	r.deleted = before
	return 3, nil
}

type published struct {
	channel string
	payload []byte
}

type fakeBroker struct {
	failTimes map[string]int
	sent      []published
	calls     int
}

func (b *fakeBroker) Publish(_ context.Context, channel string, payload []byte) error {
	b.calls++
	if b.failTimes[channel] > 0 {
		b.failTimes[channel]--
		return errors.New("connection refused")
	}
	b.sent = append(b.sent, published{channel: channel, payload: payload})
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func newTestProcessor(t *testing.T, repo *fakeOutboxRepo, broker *fakeBroker, attempts int) (*OutboxProcessor, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetrics("hospital", "worker_test", prometheus.NewRegistry())
	p, err := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
		MaxAttempts:   5,
	}, logger.Nop(), m)
	require.NoError(t, err)
	return p, m
}

func TestOutboxProcessor_PublishesEnvelopePerEventType(t *testing.T) {
	evt, err := model.NewOutboxEvent(model.EventAppointmentCreated, map[string]string{"reason": "checkup"})
	require.NoError(t, err)

	repo := &fakeOutboxRepo{events: []*model.OutboxEvent{evt}}
	broker := &fakeBroker{}
	p, m := newTestProcessor(t, repo, broker, 1)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, broker.sent, 1)
	assert.Equal(t, model.EventAppointmentCreated, broker.sent[0].channel)

	var msg messaging.Message
	require.NoError(t, json.Unmarshal(broker.sent[0].payload, &msg))
	assert.Equal(t, evt.ID.String(), msg.ID)
	assert.Equal(t, model.EventAppointmentCreated, msg.Type)
	assert.JSONEq(t, `{"reason":"checkup"}`, string(msg.Payload))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsProcessed))
}

func TestOutboxProcessor_RetriesBeforeGivingUp(t *testing.T) {
	ok, _ := model.NewOutboxEvent(model.EventReviewCreated, struct{}{})
	flaky, _ := model.NewOutboxEvent(model.EventAppointmentUpdated, struct{}{})

	repo := &fakeOutboxRepo{events: []*model.OutboxEvent{ok, flaky}}
	broker := &fakeBroker{failTimes: map[string]int{
		model.EventReviewCreated:      1,
		model.EventAppointmentUpdated: 10,
	}}
	p, m := newTestProcessor(t, repo, broker, 3)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, repo.failed, flaky.ID)
	assert.NotContains(t, repo.failed, ok.ID)
	assert.Equal(t, 5, broker.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxEventsFailed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OutboxRetries.WithLabelValues(model.EventAppointmentUpdated)))
}

func TestNewOutboxProcessor_RejectsBadConfig(t *testing.T) {
	_, err := NewOutboxProcessor(&fakeOutboxRepo{}, &fakeBroker{}, OutboxProcessorConfig{}, logger.Nop(),
		metrics.NewMetrics("hospital", "worker_bad", prometheus.NewRegistry()))
	assert.Error(t, err)
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 5, time.Hour, func() error {
		calls++
		return errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestOutboxCleanupWorker_UsesRetentionCutoff(t *testing.T) {
	repo := &fakeOutboxRepo{}
	w := NewOutboxCleanupWorker(repo, 24*time.Hour, time.Hour, logger.Nop())

	before := time.Now().Add(-24 * time.Hour)
	w.Cleanup(context.Background())

	assert.WithinDuration(t, before, repo.deleted, time.Second)
}
