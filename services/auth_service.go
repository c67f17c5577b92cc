package services

import (
	"errors"
	"strings"

	"github.com/elidrum/Nutrease/config"
	"github.com/elidrum/Nutrease/models"
	"github.com/elidrum/Nutrease/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
)

type RegisterPatientInput struct {
	Email       string
	Password    string
	Name        string
	Surname     string
	ProfileNote string
}

type RegisterSpecialistInput struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Category models.SpecialistCategory
	Bio      string
}

func RegisterPatient(in RegisterPatientInput) (*models.User, error) {
	user := models.User{
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Name:        in.Name,
		Surname:     in.Surname,
		Role:        models.RolePatient,
		ProfileNote: in.ProfileNote,
	}
	return register(&user, in.Password)
}

func RegisterSpecialist(in RegisterSpecialistInput) (*models.User, error) {
	user := models.User{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Name:     in.Name,
		Surname:  in.Surname,
		Role:     models.RoleSpecialist,
		Category: in.Category,
		Bio:      in.Bio,
	}
	return register(&user, in.Password)
}

func register(user *models.User, password string) (*models.User, error) {
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	var count int64
	if err := config.DB.Model(&models.User{}).
		Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := config.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func ChangePassword(userID uint, current, next string) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return ErrInvalidCredentials
	}
	if err := utils.ValidatePassword(next); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	return config.DB.Model(&user).Update("password", hashed).Error
}

// IssueResetToken stores and returns an opaque reset token. Delivering it
// (email, SMS) is the notification collaborator's job.
func IssueResetToken(email string) (string, error) {
	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := config.DB.Model(&user).Update("reset_token", token).Error; err != nil {
		return "", err
	}
	return token, nil
}
