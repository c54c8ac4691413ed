//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	pending   []shared.OutboxEvent
	published []shared.OutboxEvent
	calls     int
}

func (s *memorySource) WithPending(ctx context.Context, limit int, fn func(context.Context, []shared.OutboxEvent) error) (int, error) {
	s.calls++
	n := min(limit, len(s.pending))
	if n == 0 {
		return 0, nil
	}
	batch := s.pending[:n]
	if err := fn(ctx, batch); err != nil {
		return 0, err
	}
	s.published = append(s.published, batch...)
	s.pending = s.pending[n:]
	return n, nil
}

type recordingPublisher struct {
	batches [][]shared.OutboxEvent
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, events []shared.OutboxEvent) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, events)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func events(n int) []shared.OutboxEvent {
	out := make([]shared.OutboxEvent, n)
	for i := range out {
		out[i] = shared.OutboxEvent{ID: uuid.New(), AggregateID: uuid.New(), Type: shared.EventAppointmentCreated, Payload: []byte(`{}`)}
	}
	return out
}

func TestRelayRunOnce(t *testing.T) {
	t.Run("drains in batches", func(t *testing.T) {
		src := &memorySource{pending: events(5)}
		pub := &recordingPublisher{}
		relay := outbox.NewRelay(src, pub, 2, nil)

		n, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Len(t, pub.batches, 3)
		assert.Empty(t, src.pending)
	})

	t.Run("exact multiple ends with an empty fetch", func(t *testing.T) {
		src := &memorySource{pending: events(4)}
		relay := outbox.NewRelay(src, &recordingPublisher{}, 2, nil)

		n, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, 3, src.calls)
	})

	t.Run("publish failure keeps events pending", func(t *testing.T) {
		src := &memorySource{pending: events(3)}
		relay := outbox.NewRelay(src, &recordingPublisher{err: errors.New("broker down")}, 10, nil)

		n, err := relay.RunOnce(context.Background())
		assert.Error(t, err)
		assert.Equal(t, 0, n)
		assert.Len(t, src.pending, 3)
		assert.Empty(t, src.published)
	})
}

type blockingPublisher struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (p *blockingPublisher) Publish(_ context.Context, _ []shared.OutboxEvent) error {
	p.calls.Add(1)
	p.entered <- struct{}{}
	<-p.release
	return nil
}

func (p *blockingPublisher) Close() error { return nil }

func TestRelaySchedule(t *testing.T) {
	relay := outbox.NewRelay(&memorySource{}, &recordingPublisher{}, 10, nil)
	c := outbox.NewScheduler(nil)

	_, err := relay.Schedule(context.Background(), c, "@every 5s")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = relay.Schedule(context.Background(), c, "not a schedule")
	assert.Error(t, err)
}

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	pub := &blockingPublisher{entered: make(chan struct{}), release: make(chan struct{})}
	relay := outbox.NewRelay(&memorySource{pending: events(3)}, pub, 10, nil)
	c := outbox.NewScheduler(nil)

	id, err := relay.Schedule(context.Background(), c, "@every 1h")
	require.NoError(t, err)
	job := c.Entry(id).WrappedJob

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-pub.entered

	// A tick arriving while the first run is publishing returns without touching the outbox.
	job.Run()
	assert.Equal(t, int32(1), pub.calls.Load())

	close(pub.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first run did not finish")
	}
	assert.Equal(t, int32(1), pub.calls.Load())
}

func TestToMessage(t *testing.T) {
	e := shared.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: uuid.New(),
		Type:        shared.EventAppointmentConfirmed,
		Payload:     []byte(`{"status":"confirmed"}`),
		CreatedAt:   time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC),
	}
	msg := outbox.ToMessage(e)
	assert.Equal(t, e.AggregateID.String(), string(msg.Key))
	assert.Equal(t, e.Payload, msg.Value)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[1].Key)
	assert.Equal(t, shared.EventAppointmentConfirmed, string(msg.Headers[1].Value))
}
