package handlers

import (
	"net/http"
	"strconv"

	"coladay/middleware"
	"coladay/models"
	"coladay/services/ledger"
	"coladay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomHandler exposes the ledger boundary over HTTP.
type RoomHandler struct {
	Ledger ledger.Service
	Logger *zap.Logger
}

func NewRoomHandler(led ledger.Service, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{Ledger: led, Logger: logger}
}

// GetBusinessHours returns the fixed business-hour configuration.
func (h *RoomHandler) GetBusinessHours(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"businessHourStart": h.Ledger.BusinessHourStart(),
		"businessHourEnd":   h.Ledger.BusinessHourEnd(),
	})
}

// ListRooms returns the fixed room set.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms := make([]gin.H, 0, models.RoomCount)
	for _, room := range models.AllRooms() {
		rooms = append(rooms, gin.H{"id": int(room), "name": room.String()})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom returns the full schedule of one room.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, ok := roomParam(c)
	if !ok {
		return
	}
	schedule, err := h.Ledger.GetRoom(c.Request.Context(), room)
	if err != nil {
		h.renderLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":     room.String(),
		"schedule": schedule,
	})
}

// Book submits a booking for the authenticated wallet.
func (h *RoomHandler) Book(c *gin.Context) {
	room, timeslot, requester, ok := h.mutationParams(c)
	if !ok {
		return
	}
	confirmation, err := h.Ledger.Book(c.Request.Context(), room, timeslot, requester)
	if err != nil {
		h.renderLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": confirmation})
}

// Cancel submits a cancellation for the authenticated wallet.
func (h *RoomHandler) Cancel(c *gin.Context) {
	room, timeslot, requester, ok := h.mutationParams(c)
	if !ok {
		return
	}
	confirmation, err := h.Ledger.Cancel(c.Request.Context(), room, timeslot, requester)
	if err != nil {
		h.renderLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": confirmation})
}

func (h *RoomHandler) mutationParams(c *gin.Context) (models.Room, int, models.Address, bool) {
	room, ok := roomParam(c)
	if !ok {
		return 0, 0, "", false
	}
	timeslot, err := strconv.Atoi(c.Param("timeslot"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid timeslot", c.Param("timeslot"))
		return 0, 0, "", false
	}
	requester, ok := walletAddress(c)
	if !ok {
		return 0, 0, "", false
	}
	return room, timeslot, requester, true
}

func (h *RoomHandler) renderLedgerError(c *gin.Context, err error) {
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
		h.Logger.Error("Ledger request failed", zap.Error(err))
		utils.JSONError(c, status, "ledger request failed", "")
		return
	}
	c.JSON(status, utils.ErrorResponse{Code: ledger.ErrorCode(err), Message: err.Error()})
}

// roomParam resolves the :room path parameter, accepting the numeric id or
// the room name ("C01").
func roomParam(c *gin.Context) (models.Room, bool) {
	param := c.Param("room")
	if id, err := strconv.Atoi(param); err == nil {
		return models.Room(id), true
	}
	room, err := models.ParseRoom(param)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "unknown room", param)
		return 0, false
	}
	return room, true
}

func walletAddress(c *gin.Context) (models.Address, bool) {
	value, exists := c.Get(middleware.ContextWalletAddress)
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "no authenticated wallet", "")
		return "", false
	}
	address, ok := value.(models.Address)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "no authenticated wallet", "")
		return "", false
	}
	return address, true
}
