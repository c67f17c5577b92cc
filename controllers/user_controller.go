package controllers

import (
	"net/http"

	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")
	user, err := services.FindUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	var input struct {
		Name        string `json:"name"`
		Surname     string `json:"surname"`
		ProfileNote string `json:"profile_note"`
		Bio         string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetUint("userID")
	user, err := services.UpdateProfile(uid, services.ProfileUpdate{
		Name:        input.Name,
		Surname:     input.Surname,
		ProfileNote: input.ProfileNote,
		Bio:         input.Bio,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func ListSpecialists(c *gin.Context) {
	specialists, err := services.ListSpecialists(c.Query("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, specialists)
}
