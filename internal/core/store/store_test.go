package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldbarth/arcflow/internal/core/store"
	"github.com/goldbarth/arcflow/internal/core/types"
)

func notif(msg string) types.ShowNotification {
	return types.ShowNotification{Notification: types.Notification{Message: msg}}
}

// TestStoreFIFOOrderingFollowUpGoesToTail proves that an action an effect
// dispatches lands behind anything already enqueued ahead of it, per
// spec.md §5's strict-FIFO rule. The effect for "X" blocks on proceed until
// after "Y" has been enqueued, so there is no race to land "Z" ahead of "Y".
func TestStoreFIFOOrderingFollowUpGoesToTail(t *testing.T) {
	proceed := make(chan struct{})
	effect := func(action types.Action, getState func() types.RootState, dispatch func(types.Action)) {
		if sn, ok := action.(types.ShowNotification); ok && sn.Notification.Message == "X" {
			<-proceed
			dispatch(notif("Z"))
		}
	}

	st := store.New(types.NewRootState(), effect, zerolog.Nop())
	defer st.Dispose()

	var mu sync.Mutex
	var order []string
	done := make(chan struct{})
	st.OnStateChanged(func(state types.RootState) {
		mu.Lock()
		defer mu.Unlock()
		if n := len(state.Notifications); n > 0 {
			order = append(order, state.Notifications[n-1].Message)
			if len(order) == 3 {
				close(done)
			}
		}
	})

	st.Dispatch(notif("X"))
	st.Dispatch(notif("Y"))
	close(proceed)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for X, Y, Z to be processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"X", "Y", "Z"}, order)
}

func TestStoreListenersNotifiedInRegistrationOrder(t *testing.T) {
	st := store.New(types.NewRootState(), nil, zerolog.Nop())
	defer st.Dispose()

	var mu sync.Mutex
	var calls []string
	done := make(chan struct{})

	st.OnStateChanged(func(state types.RootState) {
		mu.Lock()
		calls = append(calls, "first")
		mu.Unlock()
	})
	st.OnStateChanged(func(state types.RootState) {
		mu.Lock()
		calls = append(calls, "second")
		mu.Unlock()
		close(done)
	})

	st.Dispatch(notif("A"))
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestStoreOffUnregistersListener(t *testing.T) {
	st := store.New(types.NewRootState(), nil, zerolog.Nop())
	defer st.Dispose()

	var mu sync.Mutex
	count := 0
	first := make(chan struct{})
	id := st.OnStateChanged(func(state types.RootState) {
		mu.Lock()
		count++
		c := count
		mu.Unlock()
		if c == 1 {
			close(first)
		}
	})

	st.Dispatch(notif("A"))
	<-first
	st.Off(id)

	// Give the (now listener-less) worker a follow-up action to process;
	// its absence from the call count proves Off took effect, not a race.
	secondDone := make(chan struct{})
	secondID := st.OnStateChanged(func(types.RootState) { close(secondDone) })
	st.Dispatch(notif("B"))
	<-secondDone
	st.Off(secondID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestStoreDisposeDropsSubsequentDispatches(t *testing.T) {
	st := store.New(types.NewRootState(), nil, zerolog.Nop())

	done := make(chan struct{})
	var once sync.Once
	st.OnStateChanged(func(types.RootState) {
		once.Do(func() { close(done) })
	})

	st.Dispatch(notif("A"))
	<-done
	st.Dispose()

	st.Dispatch(notif("B"))

	state := st.State()
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, "A", state.Notifications[0].Message)
}

func TestStoreDisposeIsIdempotent(t *testing.T) {
	st := store.New(types.NewRootState(), nil, zerolog.Nop())
	st.Dispose()
	assert.NotPanics(t, func() { st.Dispose() })
}
