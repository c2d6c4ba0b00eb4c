package events

import (
	"context"
	"testing"
)

func TestBus_PublishReachesTopicSubscribersOnly(t *testing.T) {
	bus := NewBus()
	var cartHits, wishlistHits int

	bus.Subscribe(TopicCartUpdated, func(context.Context, Event) { cartHits++ })
	bus.Subscribe(TopicWishlistUpdated, func(context.Context, Event) { wishlistHits++ })

	bus.Publish(context.Background(), TopicCartUpdated, nil)
	bus.Publish(context.Background(), TopicCartUpdated, nil)

	if cartHits != 2 {
		t.Fatalf("expected 2 cart deliveries, got %d", cartHits)
	}
	if wishlistHits != 0 {
		t.Fatalf("expected no wishlist deliveries, got %d", wishlistHits)
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	var hits int
	cancel := bus.Subscribe(TopicUserLogin, func(context.Context, Event) { hits++ })

	bus.Publish(context.Background(), TopicUserLogin, nil)
	cancel()
	cancel() // idempotent
	bus.Publish(context.Background(), TopicUserLogin, nil)

	if hits != 1 {
		t.Fatalf("expected 1 delivery after unsubscribe, got %d", hits)
	}
}

func TestBus_EventCarriesTopicAndMetadata(t *testing.T) {
	bus := NewBus()
	var got Event
	bus.Subscribe(TopicCartUpdated, func(_ context.Context, evt Event) { got = evt })

	bus.Publish(context.Background(), TopicCartUpdated, map[string]any{"source": "checkout"})

	if got.Topic != TopicCartUpdated {
		t.Fatalf("expected cart topic, got %q", got.Topic)
	}
	if got.Metadata["source"] != "checkout" {
		t.Fatalf("expected metadata to pass through, got %v", got.Metadata)
	}
	if got.At.IsZero() {
		t.Fatalf("expected event timestamp")
	}
}
