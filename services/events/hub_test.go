package events

import (
	"context"
	"testing"

	"coladay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DispatchesInSubscriptionOrder(t *testing.T) {
	hub := NewHub()
	var order []string

	subA := hub.Subscribe(func(models.Confirmation) { order = append(order, "a") })
	defer subA.Close()
	subB := hub.Subscribe(func(models.Confirmation) { order = append(order, "b") })
	defer subB.Close()

	hub.Publish(context.Background(), models.Confirmation{Position: 1})
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestHub_CloseDetachesHandler(t *testing.T) {
	hub := NewHub()
	var received int

	sub := hub.Subscribe(func(models.Confirmation) { received++ })
	hub.Publish(context.Background(), models.Confirmation{Position: 1})
	require.Equal(t, 1, received)

	sub.Close()
	sub.Close() // idempotent
	hub.Publish(context.Background(), models.Confirmation{Position: 2})
	assert.Equal(t, 1, received)
}

func TestHub_CloseOnlyAffectsOwnSubscription(t *testing.T) {
	hub := NewHub()
	var a, b int

	subA := hub.Subscribe(func(models.Confirmation) { a++ })
	subB := hub.Subscribe(func(models.Confirmation) { b++ })
	defer subB.Close()

	subA.Close()
	hub.Publish(context.Background(), models.Confirmation{Position: 1})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}
