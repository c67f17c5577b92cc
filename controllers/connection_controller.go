package controllers

import (
	"errors"
	"net/http"

	"github.com/elidrum/Nutrease/models"
	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

type ConnectionController struct {
	Svc *services.ConnectionService
}

func NewConnectionController(svc *services.ConnectionService) *ConnectionController {
	return &ConnectionController{Svc: svc}
}

// POST /connections
func (h *ConnectionController) Request(c *gin.Context) {
	var body struct {
		SpecialistID uint   `json:"specialist_id" binding:"required"`
		Comment      string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Svc.Request(c.GetUint("userID"), body.SpecialistID, body.Comment)
	switch {
	case errors.Is(err, services.ErrDuplicateActiveConnection):
		c.JSON(http.StatusConflict, gin.H{"error": "a pending or approved link with this specialist already exists"})
	case errors.Is(err, services.ErrConnectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, conn)
	}
}

// GET /connections
func (h *ConnectionController) List(c *gin.Context) {
	role := models.Role(c.GetString("role"))
	conns, err := h.Svc.ListForUser(c.GetUint("userID"), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conns)
}

// GET /connections/pending
func (h *ConnectionController) Pending(c *gin.Context) {
	conns, err := h.Svc.PendingFor(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conns)
}

// POST /connections/:id/approve
func (h *ConnectionController) Approve(c *gin.Context) {
	h.transition(c, h.Svc.Approve)
}

// POST /connections/:id/decline
func (h *ConnectionController) Decline(c *gin.Context) {
	h.transition(c, h.Svc.Decline)
}

// POST /connections/:id/revoke
func (h *ConnectionController) Revoke(c *gin.Context) {
	h.transition(c, h.Svc.Revoke)
}

func (h *ConnectionController) transition(c *gin.Context, fn func(connID, actorID uint) (*models.Connection, error)) {
	connID, err := paramID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	conn, err := fn(connID, c.GetUint("userID"))
	switch {
	case errors.Is(err, services.ErrConnectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		// stale UI or lost race; the client should refresh its view
		c.JSON(http.StatusConflict, gin.H{"error": "action not allowed in the connection's current state"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, conn)
	}
}
