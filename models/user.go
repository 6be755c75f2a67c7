package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered reporter on the platform.
type User struct {
	Model
	Fullname       string    `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email          string    `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Telephone      string    `json:"telephone" gorm:"default:null" conform:"trim"`
	Password       string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8"`
	HashedPassword string    `json:"-"`
	IsVerified     bool      `json:"is_verified"`
	IsBlocked      bool      `json:"is_blocked" gorm:"default:false"`
	AdminStatus    bool      `json:"is_admin"`
	ThumbNailURL   string    `json:"thumbnail_url,omitempty"`
	ResetToken     string    `json:"-"`
	RoleID         uuid.UUID `gorm:"type:uuid" json:"role_id"`
	Role           Role      `gorm:"foreignKey:RoleID" json:"role"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	IsVerified   bool   `json:"verified"`
	ThumbNailURL string `json:"profile_picture,omitempty"`
	RoleName     string `json:"role_name"`
}

type EditProfileResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"password_confirmation" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(8, errors.New("password cant be less than 8 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	err := passwordValidator.Validate(password)
	return err
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

// Conform normalizes string fields tagged with conform rules (trim, lower).
func (u *User) Conform() error {
	return validateWhiteSpaces(u)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
