package intent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

func TestStore_CreateGet(t *testing.T) {
	store := NewStore(10, time.Minute)
	require.NoError(t, store.Create(&domain.BookingIntent{ID: "a", State: domain.StateDraft}))
	assert.ErrorIs(t, store.Create(&domain.BookingIntent{ID: "a"}), ErrIntentExists)

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, domain.StateDraft, got.State)

	// Изменение копии не влияет на хранилище
	got.State = domain.StateAborted
	again, _ := store.Get("a")
	assert.Equal(t, domain.StateDraft, again.State)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrIntentNotFound)
}

func TestStore_AcquireIsExclusive(t *testing.T) {
	store := NewStore(10, time.Minute)
	require.NoError(t, store.Create(&domain.BookingIntent{ID: "a", State: domain.StateDraft}))

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Acquire("a"); err == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrStepInProgress)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, acquired)

	released, err := store.Release("a", func(current *domain.BookingIntent) {
		current.State = domain.StateMeetingCreated
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateMeetingCreated, released.State)

	_, err = store.Acquire("a")
	assert.NoError(t, err)
}

func TestStore_UpdateSeesInFlight(t *testing.T) {
	store := NewStore(10, time.Minute)
	require.NoError(t, store.Create(&domain.BookingIntent{ID: "a", State: domain.StateDraft}))
	_, err := store.Acquire("a")
	require.NoError(t, err)

	_, err = store.Update("a", func(current *domain.BookingIntent, inFlight bool) error {
		assert.True(t, inFlight)
		current.State = domain.StateAborted
		return nil
	})
	require.NoError(t, err)

	got, _ := store.Get("a")
	assert.Equal(t, domain.StateAborted, got.State)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(10, 20*time.Millisecond)
	require.NoError(t, store.Create(&domain.BookingIntent{ID: "a"}))

	assert.Eventually(t, func() bool {
		_, err := store.Get("a")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
