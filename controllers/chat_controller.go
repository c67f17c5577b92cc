package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Svc *services.ChatService
}

func NewChatController(svc *services.ChatService) *ChatController {
	return &ChatController{Svc: svc}
}

// POST /connections/:id/messages
func (h *ChatController) Post(c *gin.Context) {
	connID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Svc.Post(connID, c.GetUint("userID"), body.Body)
	switch {
	case errors.Is(err, services.ErrConnectionNotApproved):
		c.JSON(http.StatusForbidden, gin.H{"error": "connection is not approved"})
	case errors.Is(err, services.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body is empty"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, msg)
	}
}

// GET /connections/:id/messages?after_id=&limit=
func (h *ChatController) History(c *gin.Context) {
	connID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	afterID, _ := strconv.ParseUint(c.DefaultQuery("after_id", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.Svc.History(connID, c.GetUint("userID"), uint(afterID), limit)
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for this conversation"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, msgs)
	}
}
