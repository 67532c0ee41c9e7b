package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notekeeper/internal/models"
)

func TestDispatcher_DeliversInSubscriptionOrder(t *testing.T) {
	d := NewDispatcher()

	var order []string
	d.Subscribe(func(event ReconcileEvent) { order = append(order, "first") })
	d.Subscribe(func(event ReconcileEvent) { order = append(order, "second") })

	d.Dispatch(ReconcileEvent{Source: SourceSnapshot})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewDispatcher()

	calls := 0
	unsubscribe := d.Subscribe(func(event ReconcileEvent) { calls++ })
	d.Dispatch(ReconcileEvent{Source: SourceSyncResults})
	unsubscribe()
	unsubscribe()
	d.Dispatch(ReconcileEvent{Source: SourceSyncResults})

	assert.Equal(t, 1, calls)
}

func TestDispatcher_ListenersGetIndependentCopies(t *testing.T) {
	d := NewDispatcher()
	records := []models.NoteRecord{{NoteID: "n", MarkdownText: "original", Attachments: map[string]models.Attachment{"a": {AltText: "x"}}}}

	var received []ReconcileEvent
	d.Subscribe(func(event ReconcileEvent) {
		event.Records[0].MarkdownText = "mutated"
		event.Records[0].Attachments["a"] = models.Attachment{}
		received = append(received, event)
	})
	d.Subscribe(func(event ReconcileEvent) { received = append(received, event) })

	d.Dispatch(ReconcileEvent{Source: SourceSnapshot, Records: records})

	require.Len(t, received, 2)
	assert.Equal(t, "original", records[0].MarkdownText)
	assert.Equal(t, "original", received[1].Records[0].MarkdownText)
	assert.Equal(t, "x", received[1].Records[0].Attachments["a"].AltText)
	assert.Equal(t, SourceSnapshot, received[1].Source)
}

func TestDispatcher_NoListeners(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDispatcher().Dispatch(ReconcileEvent{Source: SourceSnapshot})
	})
}
