package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// BookingEventType tags a booking feed event.
type BookingEventType string

const (
	BookingInserted BookingEventType = "inserted"
	BookingUpdated  BookingEventType = "updated"
	BookingDeleted  BookingEventType = "deleted"
)

// BookingEvent is one change to the booking set. Booking is set for
// inserted/updated events; ID alone identifies deletions.
type BookingEvent struct {
	Type    BookingEventType `json:"type"`
	ID      string           `json:"id"`
	Booking *models.Booking  `json:"booking,omitempty"`
}

// BookingFeed broadcasts booking changes to dashboard subscribers and
// maintains a local snapshot: a map keyed by booking id plus a
// separate display order (newest first). Publishing never blocks on a
// slow subscriber; events a subscriber cannot take are dropped for
// that subscriber only.
type BookingFeed struct {
	mu sync.RWMutex

	byID  map[string]*models.Booking
	order []string // booking ids, newest first

	subscribers map[string]chan BookingEvent
}

// NewBookingFeed creates an empty feed
func NewBookingFeed() *BookingFeed {
	return &BookingFeed{
		byID:        make(map[string]*models.Booking),
		subscribers: make(map[string]chan BookingEvent),
	}
}

// Seed loads the current booking set (newest first) into the snapshot
// without emitting events. Called once at startup.
func (f *BookingFeed) Seed(bookings []models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.byID = make(map[string]*models.Booking, len(bookings))
	f.order = make([]string, 0, len(bookings))
	for i := range bookings {
		b := bookings[i]
		f.byID[b.ID] = &b
		f.order = append(f.order, b.ID)
	}
}

// Publish applies an event to the snapshot and broadcasts it. Sends
// happen under the lock so they can never race an Unsubscribe close;
// they are non-blocking, so holding the lock is cheap.
func (f *BookingFeed) Publish(event BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.apply(event)
	for _, ch := range f.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is not draining; drop rather than block.
		}
	}
}

// apply mutates the snapshot. Caller holds the write lock.
func (f *BookingFeed) apply(event BookingEvent) {
	switch event.Type {
	case BookingInserted:
		if event.Booking == nil {
			return
		}
		if _, exists := f.byID[event.ID]; !exists {
			f.order = append([]string{event.ID}, f.order...)
		}
		f.byID[event.ID] = event.Booking
	case BookingUpdated:
		if event.Booking == nil {
			return
		}
		if _, exists := f.byID[event.ID]; exists {
			f.byID[event.ID] = event.Booking
		}
	case BookingDeleted:
		if _, exists := f.byID[event.ID]; exists {
			delete(f.byID, event.ID)
			for i, id := range f.order {
				if id == event.ID {
					f.order = append(f.order[:i], f.order[i+1:]...)
					break
				}
			}
		}
	}
}

// Snapshot returns the current booking set in display order.
func (f *BookingFeed) Snapshot() []models.Booking {
	f.mu.RLock()
	defer f.mu.RUnlock()

	bookings := make([]models.Booking, 0, len(f.order))
	for _, id := range f.order {
		if b, ok := f.byID[id]; ok {
			bookings = append(bookings, *b)
		}
	}
	return bookings
}

// Subscribe registers a new feed consumer. The returned id must be
// passed to Unsubscribe when the consumer goes away.
func (f *BookingFeed) Subscribe() (string, <-chan BookingEvent) {
	id := uuid.New().String()
	ch := make(chan BookingEvent, 16)

	f.mu.Lock()
	f.subscribers[id] = ch
	f.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a consumer and closes its channel. The close
// holds the same lock Publish sends under, so no event can land on a
// closed channel.
func (f *BookingFeed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subscribers[id]; ok {
		delete(f.subscribers, id)
		close(ch)
	}
}
