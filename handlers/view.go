package handlers

import (
	"errors"
	"net/http"
	"sync"

	"coladay/models"
	"coladay/services/events"
	"coladay/services/ledger"
	"coladay/services/notification"
	"coladay/services/roomview"
	"coladay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewHandler serves the reconciliation views, one per authenticated
// wallet, created on demand at the current ledger position.
type ViewHandler struct {
	Ledger   ledger.Service
	Bus      events.Bus
	Notifier notification.Notifier
	Logger   *zap.Logger

	mu    sync.Mutex
	views map[models.Address]*roomview.View
}

func NewViewHandler(led ledger.Service, bus events.Bus, notifier notification.Notifier, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		Ledger:   led,
		Bus:      bus,
		Notifier: notifier,
		Logger:   logger,
		views:    make(map[models.Address]*roomview.View),
	}
}

// GetView returns the displayed room merged with pending state.
func (h *ViewHandler) GetView(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}
	h.renderSnapshot(c, view)
}

// SelectRoom switches the displayed room.
func (h *ViewHandler) SelectRoom(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}
	var input struct {
		Room string `json:"room"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	room, err := models.ParseRoom(input.Room)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown room", input.Room)
		return
	}
	if err := view.SelectRoom(c.Request.Context(), room); err != nil {
		h.renderViewError(c, err)
		return
	}
	h.renderSnapshot(c, view)
}

// Book submits an optimistic booking through the view.
func (h *ViewHandler) Book(c *gin.Context) {
	h.request(c, func(view *roomview.View, room models.Room, timeslot int) error {
		return view.RequestBooking(c.Request.Context(), room, timeslot)
	})
}

// Cancel submits an optimistic cancellation through the view.
func (h *ViewHandler) Cancel(c *gin.Context) {
	h.request(c, func(view *roomview.View, room models.Room, timeslot int) error {
		return view.RequestCancelling(c.Request.Context(), room, timeslot)
	})
}

// CloseView tears down the caller's view and its subscription.
func (h *ViewHandler) CloseView(c *gin.Context) {
	address, ok := walletAddress(c)
	if !ok {
		return
	}
	h.mu.Lock()
	view, exists := h.views[address]
	delete(h.views, address)
	h.mu.Unlock()
	if exists {
		view.Close()
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

func (h *ViewHandler) request(c *gin.Context, submit func(*roomview.View, models.Room, int) error) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}
	var input struct {
		Room     string `json:"room"`
		Timeslot int    `json:"timeslot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	room := view.Snapshot().Room
	if input.Room != "" {
		parsed, err := models.ParseRoom(input.Room)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "unknown room", input.Room)
			return
		}
		room = parsed
	}

	if err := submit(view, room, input.Timeslot); err != nil {
		h.renderViewError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"status":   "pending",
		"room":     room.String(),
		"timeslot": input.Timeslot,
	})
}

func (h *ViewHandler) viewFor(c *gin.Context) (*roomview.View, bool) {
	address, ok := walletAddress(c)
	if !ok {
		return nil, false
	}

	h.mu.Lock()
	view, exists := h.views[address]
	h.mu.Unlock()
	if exists {
		return view, true
	}

	view, err := roomview.New(c.Request.Context(), h.Ledger, h.Bus, h.Notifier, address, h.Logger)
	if err != nil {
		h.Logger.Error("Failed to build room view", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to build room view", "")
		return nil, false
	}

	h.mu.Lock()
	if existing, raced := h.views[address]; raced {
		h.mu.Unlock()
		view.Close()
		return existing, true
	}
	h.views[address] = view
	h.mu.Unlock()
	return view, true
}

func (h *ViewHandler) renderSnapshot(c *gin.Context, view *roomview.View) {
	snapshot := view.Snapshot()
	slots := make([]gin.H, 0, len(snapshot.Schedule))
	for i, owner := range snapshot.Schedule {
		timeslot := snapshot.HourStart + i
		slots = append(slots, gin.H{
			"timeslot": timeslot,
			"label":    utils.FormatTimeslot(timeslot),
			"owner":    owner,
			"state":    slotStateName(view.SlotState(timeslot)),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"room":              snapshot.Room.String(),
		"businessHourStart": snapshot.HourStart,
		"businessHourEnd":   snapshot.HourEnd,
		"checkpoint":        snapshot.Checkpoint,
		"slots":             slots,
		"pending":           snapshot.Pending,
	})
}

func (h *ViewHandler) renderViewError(c *gin.Context, err error) {
	if errors.Is(err, roomview.ErrSlotPending) {
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: err.Error()})
		return
	}
	status := http.StatusInternalServerError
	switch ledger.ErrorCode(err) {
	case ledger.CodeInvalidRoom:
		status = http.StatusNotFound
	case ledger.CodeOutOfBusinessHours:
		status = http.StatusBadRequest
	case ledger.CodeAlreadyBooked:
		status = http.StatusConflict
	case ledger.CodeNotOwner:
		status = http.StatusForbidden
	case "":
		h.Logger.Error("Room view request failed", zap.Error(err))
		utils.JSONError(c, status, "room view request failed", "")
		return
	}
	c.JSON(status, utils.ErrorResponse{Code: ledger.ErrorCode(err), Message: err.Error()})
}

func slotStateName(state roomview.SlotState) string {
	switch state {
	case roomview.SlotPending:
		return "pending"
	case roomview.SlotOwnedBySelf:
		return "ownedBySelf"
	case roomview.SlotOwnedByOther:
		return "ownedByOther"
	default:
		return "free"
	}
}
