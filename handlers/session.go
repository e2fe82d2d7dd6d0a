package handlers

import (
	"net/http"
	"time"

	"coladay/models"
	"coladay/utils"

	"github.com/gin-gonic/gin"
)

const sessionTokenTTL = 24 * time.Hour

// CreateSessionHandler issues a session token for a wallet address. This is
// the identity boundary; signature-based wallet verification lives with the
// wallet connector, outside this service.
func CreateSessionHandler(c *gin.Context) {
	var input struct {
		Address models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !input.Address.Valid() || input.Address.IsZero() {
		utils.JSONError(c, http.StatusBadRequest, "invalid wallet address", string(input.Address))
		return
	}

	token, err := utils.GenerateToken(input.Address, sessionTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue session token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"address": input.Address,
	})
}
