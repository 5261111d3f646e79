package sse

import (
	"strings"
	"testing"
	"time"
)

func recvEvent(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("client channel closed")
		}
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ""
}

func TestBrokerBroadcast(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish("booking.created", map[string]string{"code": "AB12CD"})

	msg := recvEvent(t, ch)
	if !strings.Contains(msg, "event: booking.created") {
		t.Errorf("message = %q, missing event type", msg)
	}
	if !strings.Contains(msg, `"code":"AB12CD"`) {
		t.Errorf("message = %q, missing payload", msg)
	}
}

func TestBrokerCatalogThrottle(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish("category.created", map[string]string{"name": "hobbit"})
	b.Publish("category.created", map[string]string{"name": "wizard"})

	var catalogEvents int
	for i := 0; i < 3; i++ {
		msg := recvEvent(t, ch)
		if strings.Contains(msg, "event: catalog.updated") {
			catalogEvents++
		}
	}
	if catalogEvents != 1 {
		t.Errorf("catalog.updated seen %d times, want 1 within throttle window", catalogEvents)
	}
}

func TestBrokerClientCount(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	waitCount := func(want int) {
		t.Helper()
		deadline := time.Now().Add(time.Second)
		for time.Now().Before(deadline) {
			if b.ClientCount() == want {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatalf("client count never reached %d", want)
	}
	waitCount(2)

	b.Unsubscribe(ch1)
	waitCount(1)
	b.Unsubscribe(ch2)
	waitCount(0)
}

func TestBrokerPublishAfterClose(t *testing.T) {
	b := NewBroker(0)
	b.Close()
	// Must not panic or block.
	b.Publish("booking.created", nil)
	if n := b.ClientCount(); n != 0 {
		t.Errorf("ClientCount after close = %d", n)
	}
}
