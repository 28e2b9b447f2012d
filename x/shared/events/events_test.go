package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thryx-chain/thryx/x/shared/events"
)

func TestEmitDeliversToSubscribers(t *testing.T) {
	m := events.NewManager()

	ch, cancel := m.Subscribe(8)
	defer cancel()

	m.EmitEvent(events.NewEvent("swap",
		events.NewAttribute("pool_id", "1"),
		events.NewAttribute("amount_out", "42"),
	))

	select {
	case ev := <-ch:
		require.Equal(t, "swap", ev.Type)
		v, ok := ev.Attribute("amount_out")
		require.True(t, ok)
		require.Equal(t, "42", v)
		_, ok = ev.Attribute("missing")
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	m := events.NewManager()

	_, cancel := m.Subscribe(1)
	require.Equal(t, 1, m.SubscriberCount())

	cancel()
	require.Equal(t, 0, m.SubscriberCount())

	// Cancel is idempotent.
	cancel()
	require.Equal(t, 0, m.SubscriberCount())
}

func TestSlowSubscriberDoesNotBlockEmit(t *testing.T) {
	m := events.NewManager()

	ch, cancel := m.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Second emit overflows the buffer and must be dropped, not block.
		m.EmitEvent(events.NewEvent("first"))
		m.EmitEvent(events.NewEvent("second"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on slow subscriber")
	}

	ev := <-ch
	require.Equal(t, "first", ev.Type)
}
