package controllers

import (
	"net/http"

	"github.com/elidrum/Nutrease/models"
	"github.com/elidrum/Nutrease/services"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`

	// Patient
	ProfileNote string `json:"profile_note"`

	// Specialist
	Category string `json:"category"`
	Bio      string `json:"bio"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch models.Role(input.Role) {
	case models.RolePatient:
		_, err = services.RegisterPatient(services.RegisterPatientInput{
			Email:       input.Email,
			Password:    input.Password,
			Name:        input.Name,
			Surname:     input.Surname,
			ProfileNote: input.ProfileNote,
		})
	case models.RoleSpecialist:
		_, err = services.RegisterSpecialist(services.RegisterSpecialistInput{
			Email:    input.Email,
			Password: input.Password,
			Name:     input.Name,
			Surname:  input.Surname,
			Category: models.SpecialistCategory(input.Category),
			Bio:      input.Bio,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be PATIENT or SPECIALIST"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := services.Authenticate(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
}

func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Always answer 200 so the endpoint can't be used to probe accounts.
	if _, err := services.IssueResetToken(input.Email); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset token was issued"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset token was issued"})
}

func ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetUint("userID")
	if err := services.ChangePassword(uid, input.CurrentPassword, input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
