// Package events provides the typed publish/subscribe channel that replaces
// ambient global UI events. Stores subscribe to re-sync on credential and
// external-update signals; the embedding UI publishes them.
package events

import (
	"context"
	"sync"
	"time"
)

type Topic string

const (
	TopicCartUpdated     Topic = "cart.updated"
	TopicWishlistUpdated Topic = "wishlist.updated"
	TopicUserLogin       Topic = "user.login"
	TopicUserLogout      Topic = "user.logout"
)

type Event struct {
	Topic    Topic
	At       time.Time
	Metadata map[string]any
}

type Handler func(ctx context.Context, evt Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously, in subscription order, on the
// publishing goroutine. Handlers must not block.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Topic][]subscription
	now      func() time.Time
}

func NewBus() *Bus {
	return &Bus{
		handlers: map[Topic][]subscription{},
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Subscribe registers handler for topic and returns its cancel function.
// Cancel is idempotent.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	if b == nil || handler == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish dispatches evt to a snapshot of the current subscribers, so a
// handler unsubscribing mid-delivery cannot skip its peers.
func (b *Bus) Publish(ctx context.Context, topic Topic, metadata map[string]any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[topic]...)
	at := b.now()
	b.mu.RUnlock()

	evt := Event{Topic: topic, At: at, Metadata: metadata}
	for _, sub := range subs {
		sub.handler(ctx, evt)
	}
}
