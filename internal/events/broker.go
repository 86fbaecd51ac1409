// Package events implements the in-process pub/sub hub that fans trip item
// events out to every client currently streaming a trip. Channels live only
// in memory; on restart subscribers must resubscribe.
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/types"
)

const defaultBufferSize = 100

var (
	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsquad_trip_events_published_total",
		Help: "Total number of trip events published to the broker",
	}, []string{"event_type"})
	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopsquad_trip_events_dropped_total",
		Help: "Total number of trip events dropped instead of delivered",
	}, []string{"reason"})
	activeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shopsquad_trip_subscribers",
		Help: "Number of live trip event subscriptions",
	})
)

// Config controls broker behaviour.
type Config struct {
	// BufferSize is the depth of each subscriber's delivery queue. A
	// subscriber whose queue is full has events dropped for it alone.
	BufferSize int
}

// Broker owns the trip → channel map. It is the only component allowed to
// mutate that map; mutation services and delivery endpoints operate through
// Publish and Subscribe only.
type Broker struct {
	log        *zap.SugaredLogger
	mu         sync.RWMutex
	channels   map[string]*tripChannel
	bufferSize int
}

// NewBroker creates an empty broker.
func NewBroker(cfg ...Config) *Broker {
	bufferSize := defaultBufferSize
	if len(cfg) > 0 && cfg[0].BufferSize > 0 {
		bufferSize = cfg[0].BufferSize
	}
	return &Broker{
		log:        logger.GetLogger().Named("event_broker"),
		channels:   make(map[string]*tripChannel),
		bufferSize: bufferSize,
	}
}

// tripChannel is the multicast point for one trip. Its own mutex guards the
// subscriber list, so traffic on one trip never blocks another.
type tripChannel struct {
	tripID      string
	mu          sync.Mutex
	subscribers map[string]*Subscription
	closed      bool
}

// Subscription is one listener attached to a trip's channel. Events arrive on
// Events(); the channel is closed to signal normal completion, either because
// the subscriber detached or because the trip was closed.
type Subscription struct {
	id     string
	tripID string
	ch     chan types.TripEvent
	done   chan struct{}
	once   sync.Once
	broker *Broker
}

// Events returns the delivery channel. It is closed, never errored, when the
// subscription ends.
func (s *Subscription) Events() <-chan types.TripEvent {
	return s.ch
}

// TripID reports which trip this subscription is attached to.
func (s *Subscription) TripID() string {
	return s.tripID
}

// Close detaches this subscriber from the trip's channel. Safe to call more
// than once, and safe to call after CloseTrip already completed the stream.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.detach(s.tripID, s.id)
	})
}

// Subscribe attaches a new listener to tripID's channel, creating the channel
// if none is open. Get-or-create is atomic: concurrent first subscribers end
// up on the same channel. The subscription is released automatically when ctx
// is canceled.
func (b *Broker) Subscribe(ctx context.Context, tripID string) (*Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	ch, ok := b.channels[tripID]
	if !ok {
		ch = &tripChannel{
			tripID:      tripID,
			subscribers: make(map[string]*Subscription),
		}
		b.channels[tripID] = ch
	}
	b.mu.Unlock()

	sub := &Subscription{
		id:     uuid.NewString(),
		tripID: tripID,
		ch:     make(chan types.TripEvent, b.bufferSize),
		done:   make(chan struct{}),
		broker: b,
	}

	ch.mu.Lock()
	if ch.closed {
		ch.mu.Unlock()
		// Lost a race with CloseTrip; the slot is free again, retry onto a
		// fresh channel.
		return b.Subscribe(ctx, tripID)
	}
	ch.subscribers[sub.id] = sub
	ch.mu.Unlock()

	activeSubscribers.Inc()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	b.log.Debugw("Subscriber attached", "tripID", tripID, "subscriptionID", sub.id)
	return sub, nil
}

// Publish delivers event to every current subscriber of its trip. A trip with
// no open channel discards the event silently; publishing never creates a
// channel. A full subscriber queue drops the event for that subscriber only.
func (b *Broker) Publish(ctx context.Context, event types.TripEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	ch, ok := b.channels[event.TripID]
	b.mu.RUnlock()

	if !ok {
		eventsDropped.WithLabelValues("no_channel").Inc()
		b.log.Debugw("No channel for trip, dropping event",
			"tripID", event.TripID,
			"eventType", event.Type)
		return nil
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed {
		eventsDropped.WithLabelValues("channel_closed").Inc()
		return nil
	}

	for _, sub := range ch.subscribers {
		select {
		case sub.ch <- event:
		default:
			eventsDropped.WithLabelValues("slow_subscriber").Inc()
			b.log.Warnw("Subscriber queue full, dropping event",
				"tripID", event.TripID,
				"subscriptionID", sub.id,
				"eventType", event.Type)
		}
	}

	eventsPublished.WithLabelValues(string(event.Type)).Inc()
	return nil
}

// CloseTrip tears the trip's channel down, signalling normal completion to
// every attached subscriber and freeing the registry slot so a later
// Subscribe starts fresh. Closing a trip with no channel is a no-op.
func (b *Broker) CloseTrip(tripID string) {
	b.mu.Lock()
	ch, ok := b.channels[tripID]
	if ok {
		delete(b.channels, tripID)
	}
	b.mu.Unlock()

	if !ok {
		return
	}

	ch.mu.Lock()
	ch.closed = true
	for id, sub := range ch.subscribers {
		delete(ch.subscribers, id)
		close(sub.ch)
		close(sub.done)
		activeSubscribers.Dec()
	}
	ch.mu.Unlock()

	b.log.Infow("Trip channel closed", "tripID", tripID)
}

// detach removes a single subscriber. The channel itself stays open even when
// its last subscriber leaves; only CloseTrip removes it.
func (b *Broker) detach(tripID, subscriptionID string) {
	b.mu.RLock()
	ch, ok := b.channels[tripID]
	b.mu.RUnlock()
	if !ok {
		return
	}

	ch.mu.Lock()
	sub, ok := ch.subscribers[subscriptionID]
	if ok {
		delete(ch.subscribers, subscriptionID)
		close(sub.ch)
		close(sub.done)
		activeSubscribers.Dec()
	}
	ch.mu.Unlock()

	if ok {
		b.log.Debugw("Subscriber detached", "tripID", tripID, "subscriptionID", subscriptionID)
	}
}

// SubscriberCount reports how many listeners are attached to a trip.
func (b *Broker) SubscriberCount(tripID string) int {
	b.mu.RLock()
	ch, ok := b.channels[tripID]
	b.mu.RUnlock()
	if !ok {
		return 0
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.subscribers)
}

// Shutdown closes every open trip channel.
func (b *Broker) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	channels := b.channels
	b.channels = make(map[string]*tripChannel)
	b.mu.Unlock()

	for tripID, ch := range channels {
		ch.mu.Lock()
		ch.closed = true
		for id, sub := range ch.subscribers {
			delete(ch.subscribers, id)
			close(sub.ch)
			close(sub.done)
			activeSubscribers.Dec()
		}
		ch.mu.Unlock()
		b.log.Debugw("Trip channel closed during shutdown", "tripID", tripID)
	}

	b.log.Info("Event broker shutdown complete")
	return nil
}
