package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToTopicAndWildcard(t *testing.T) {
	h := NewHub(4)
	e1, cancel1 := h.Subscribe("E1")
	defer cancel1()
	all, cancelAll := h.Subscribe(Wildcard)
	defer cancelAll()
	e2, cancel2 := h.Subscribe("E2")
	defer cancel2()

	h.Publish(Event{Topic: "E1", Kind: "status", Data: "PRESENT"})

	got := <-e1
	assert.Equal(t, "PRESENT", got.Data)
	got = <-all
	assert.Equal(t, "E1", got.Topic)
	assert.Len(t, e2, 0)
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe("E1")
	defer cancel()

	h.Publish(Event{Topic: "E1", Kind: "first"})
	h.Publish(Event{Topic: "E1", Kind: "second"})

	require.Len(t, ch, 1)
	assert.Equal(t, "first", (<-ch).Kind)
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe("E1")
	assert.Equal(t, 1, h.SubscriberCount("E1"))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.TotalSubscribers())
}
