package handlers

import (
	"io"

	"coladay/models"
	"coladay/services/events"
	"coladay/utils"

	"github.com/gin-gonic/gin"
)

// EventsHandler streams confirmations to clients over SSE. One bus
// subscription exists per connection and is closed with the request.
type EventsHandler struct {
	Bus events.Bus
}

func NewEventsHandler(bus events.Bus) *EventsHandler {
	return &EventsHandler{Bus: bus}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	ch := make(chan models.Confirmation, 16)
	sub := h.Bus.Subscribe(func(confirmation models.Confirmation) {
		select {
		case ch <- confirmation:
		default:
			// A stalled consumer misses events rather than blocking the bus;
			// it reconciles via a schedule fetch on reconnect.
		}
	})
	defer sub.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case confirmation := <-ch:
			c.SSEvent("confirmation", gin.H{
				"sender":   confirmation.Sender,
				"room":     confirmation.Room.String(),
				"timeslot": confirmation.Timeslot,
				"label":    utils.FormatTimeslot(confirmation.Timeslot),
				"action":   confirmation.Action.String(),
				"position": confirmation.Position,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
