package controllers

import (
	"net/http"
	"strconv"

	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Catalog *services.Catalog
}

func NewFoodController(catalog *services.Catalog) *FoodController {
	return &FoodController{Catalog: catalog}
}

// GET /foods/search?q=&limit=
func (h *FoodController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	matches := h.Catalog.Lookup(q, limit)
	c.JSON(http.StatusOK, gin.H{"query": q, "matches": matches})
}
