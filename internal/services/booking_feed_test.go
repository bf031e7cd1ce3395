package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedBooking(id, name string) *models.Booking {
	return &models.Booking{
		ID:            id,
		PassengerName: name,
		Pickup:        "Casablanca",
		Vehicle:       models.VehicleVito,
		TripType:      models.TripOneWay,
		Price:         1500,
		Status:        models.BookingPending,
	}
}

func TestBookingFeedSnapshot(t *testing.T) {
	feed := NewBookingFeed()

	t.Run("Empty Feed", func(t *testing.T) {
		assert.Empty(t, feed.Snapshot())
	})

	t.Run("Seed Preserves Order", func(t *testing.T) {
		feed.Seed([]models.Booking{
			*feedBooking("b-2", "Newer"),
			*feedBooking("b-1", "Older"),
		})

		snapshot := feed.Snapshot()
		require.Len(t, snapshot, 2)
		assert.Equal(t, "b-2", snapshot[0].ID)
		assert.Equal(t, "b-1", snapshot[1].ID)
	})

	t.Run("Insert Goes First", func(t *testing.T) {
		feed.Publish(BookingEvent{Type: BookingInserted, ID: "b-3", Booking: feedBooking("b-3", "Newest")})

		snapshot := feed.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "b-3", snapshot[0].ID)
	})

	t.Run("Update Replaces In Place", func(t *testing.T) {
		updated := feedBooking("b-1", "Older")
		updated.Status = models.BookingConfirmed
		feed.Publish(BookingEvent{Type: BookingUpdated, ID: "b-1", Booking: updated})

		snapshot := feed.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, models.BookingConfirmed, snapshot[2].Status)
	})

	t.Run("Delete Removes", func(t *testing.T) {
		feed.Publish(BookingEvent{Type: BookingDeleted, ID: "b-2"})

		snapshot := feed.Snapshot()
		require.Len(t, snapshot, 2)
		for _, b := range snapshot {
			assert.NotEqual(t, "b-2", b.ID)
		}
	})

	t.Run("Update For Unknown ID Is Ignored", func(t *testing.T) {
		feed.Publish(BookingEvent{Type: BookingUpdated, ID: "missing", Booking: feedBooking("missing", "Ghost")})
		assert.Len(t, feed.Snapshot(), 2)
	})
}

func TestBookingFeedSubscribers(t *testing.T) {
	t.Run("Subscriber Receives Events", func(t *testing.T) {
		feed := NewBookingFeed()
		id, events := feed.Subscribe()
		defer feed.Unsubscribe(id)

		feed.Publish(BookingEvent{Type: BookingInserted, ID: "b-1", Booking: feedBooking("b-1", "Sara")})

		select {
		case event := <-events:
			assert.Equal(t, BookingInserted, event.Type)
			assert.Equal(t, "b-1", event.ID)
		case <-time.After(time.Second):
			t.Fatal("expected an event")
		}
	})

	t.Run("Unsubscribe Closes Channel", func(t *testing.T) {
		feed := NewBookingFeed()
		id, events := feed.Subscribe()
		feed.Unsubscribe(id)

		_, ok := <-events
		assert.False(t, ok)
	})

	t.Run("Publish During Unsubscribe Churn", func(t *testing.T) {
		feed := NewBookingFeed()

		// Concurrent publishers while subscribers come and go. A send
		// landing on an already-closed channel panics a publisher and
		// fails the test.
		stop := make(chan struct{})
		var wg sync.WaitGroup
		for p := 0; p < 8; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; ; i++ {
					select {
					case <-stop:
						return
					default:
					}
					id := fmt.Sprintf("b-%d-%d", p, i)
					feed.Publish(BookingEvent{Type: BookingInserted, ID: id, Booking: feedBooking(id, "Churn")})
				}
			}(p)
		}

		for i := 0; i < 500; i++ {
			id, _ := feed.Subscribe()
			feed.Unsubscribe(id)
		}

		close(stop)
		wg.Wait()
	})

	t.Run("Slow Subscriber Does Not Block Publish", func(t *testing.T) {
		feed := NewBookingFeed()
		id, _ := feed.Subscribe()
		defer feed.Unsubscribe(id)

		// Channel buffer is 16; publishing past it must drop, not hang.
		done := make(chan struct{})
		go func() {
			for i := 0; i < 40; i++ {
				feed.Publish(BookingEvent{Type: BookingDeleted, ID: "none"})
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
	})
}
