package notify

import (
	"sync"
	"testing"
)

func TestHub_PushToSubscriber(t *testing.T) {
	hub := NewHub()
	msgs, unsubscribe := hub.Subscribe("user-1")
	defer unsubscribe()

	if !hub.Push("user-1", "account_approved", map[string]string{"name": "Ana"}) {
		t.Fatalf("expected push to succeed")
	}

	msg := <-msgs
	if msg.Event != "account_approved" {
		t.Fatalf("unexpected event: %s", msg.Event)
	}
}

func TestHub_PushWithoutSession(t *testing.T) {
	hub := NewHub()
	if hub.Push("nobody", "otp", nil) {
		t.Fatalf("push without a session must report false")
	}
}

func TestHub_ResubscribeReplacesSession(t *testing.T) {
	hub := NewHub()
	old, _ := hub.Subscribe("user-1")
	fresh, unsubscribe := hub.Subscribe("user-1")
	defer unsubscribe()

	if _, ok := <-old; ok {
		t.Fatalf("old channel should be closed")
	}

	if !hub.Push("user-1", "ping", nil) {
		t.Fatalf("push to fresh session failed")
	}
	if msg := <-fresh; msg.Event != "ping" {
		t.Fatalf("unexpected event: %s", msg.Event)
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	_, unsubscribe := hub.Subscribe("user-1")
	unsubscribe()

	if hub.Push("user-1", "ping", nil) {
		t.Fatalf("push after unsubscribe must report false")
	}
}

func TestHub_ConcurrentPushAndResubscribe(t *testing.T) {
	hub := NewHub()

	// Pushes race against reconnects replacing the session channel. Dispatcher
	// workers call Push without any recover, so a send on a closed channel
	// here would take the whole process down.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			hub.Push("user-1", "account_approved", nil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			msgs, unsubscribe := hub.Subscribe("user-1")
			go func() {
				for range msgs {
				}
			}()
			unsubscribe()
		}
	}()

	wg.Wait()
}

func TestHub_FullBufferDropsPush(t *testing.T) {
	hub := NewHub()
	_, unsubscribe := hub.Subscribe("user-1")
	defer unsubscribe()

	for i := 0; i < 16; i++ {
		if !hub.Push("user-1", "fill", nil) {
			t.Fatalf("push %d should fit in the buffer", i)
		}
	}
	if hub.Push("user-1", "overflow", nil) {
		t.Fatalf("push into a full buffer must report false")
	}
}
