package services

import (
	"errors"
	"strings"

	"github.com/elidrum/Nutrease/config"
	"github.com/elidrum/Nutrease/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user: not found")

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := config.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type ProfileUpdate struct {
	Name        string
	Surname     string
	ProfileNote string
	Bio         string
}

func UpdateProfile(userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = in.Name
	user.Surname = in.Surname
	if user.Role == models.RolePatient {
		user.ProfileNote = in.ProfileNote
	} else {
		user.Bio = in.Bio
	}
	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ListSpecialists backs the directory patients browse before sending a link
// request. An email filter narrows it to an exact (case-insensitive) address.
func ListSpecialists(email string) ([]models.User, error) {
	q := config.DB.Where("role = ?", models.RoleSpecialist)
	if email != "" {
		q = q.Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	}
	var specialists []models.User
	err := q.Order("surname ASC, name ASC").Find(&specialists).Error
	return specialists, err
}
