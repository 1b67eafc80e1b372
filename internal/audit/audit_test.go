package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exactfit/customer-web/internal/logging"
)

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewMemorySink(10)
	d := NewDispatcher(sink, logging.Discard())

	d.Dispatch(Event{Phone: "+971501234567", Action: ActionSignedIn})
	d.Dispatch(Event{Phone: "+971501234567", Action: ActionTicketRaised, Entity: "ticket", EntityRef: "TK-1", Metadata: map[string]string{"title": "Leak"}})
	d.Close()

	rows, total, err := sink.List(context.Background(), "+971501234567", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, ActionTicketRaised, rows[0].Action)
	assert.Equal(t, `{"title":"Leak"}`, rows[0].Metadata)
	assert.Equal(t, ActionSignedIn, rows[1].Action)
}

func TestMemorySinkPaginatesNewestFirst(t *testing.T) {
	sink := NewMemorySink(3)
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	i := 0
	sink.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	for _, a := range []string{"a1", "a2", "a3", "a4"} {
		require.NoError(t, sink.Log(context.Background(), Event{Phone: "p", Action: a}))
	}

	rows, total, err := sink.List(context.Background(), "p", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total, "oldest entry is evicted past the cap")
	require.Len(t, rows, 2)
	assert.Equal(t, "a4", rows[0].Action)
	assert.Equal(t, "a3", rows[1].Action)

	rows, _, err = sink.List(context.Background(), "p", 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a2", rows[0].Action)

	rows, _, err = sink.List(context.Background(), "p", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemorySinkSeparatesPhones(t *testing.T) {
	sink := NewMemorySink(10)
	require.NoError(t, sink.Log(context.Background(), Event{Phone: "a", Action: ActionSignedIn}))

	rows, total, err := sink.List(context.Background(), "b", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}
