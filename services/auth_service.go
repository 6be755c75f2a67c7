package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/soufdev/fraudline/config"
	"github.com/soufdev/fraudline/db"
	apiError "github.com/soufdev/fraudline/errors"
	"github.com/soufdev/fraudline/mailingservices"
	"github.com/soufdev/fraudline/models"
	"github.com/soufdev/fraudline/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	SendVerificationEmail(email string) *apiError.Error
	VerifyEmail(token string) error
	CheckVerification(email string) (bool, error)
	CheckEmailExists(email string) (bool, error)
	SendEmailForPasswordReset(user *models.ForgotPassword) *apiError.Error
	ResetPassword(user *models.ResetPassword, token string) *apiError.Error
	VerifyResetToken(request *models.VerifyResetTokenRequest) *apiError.Error
	GetUserProfile(userID uint) (*models.User, error)
	EditUserProfile(userID uint, userDetails *models.EditProfileResponse) error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     *mailingservices.Mailgun
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mail *mailingservices.Mailgun, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("SignupUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	if user.Email == "" {
		log.Println("SignupUser error: email is empty")
		return nil, errors.New("email is empty")
	}

	if err := user.Conform(); err != nil {
		log.Printf("SignupUser error normalizing input: %v", err)
		return nil, apiError.ErrBadRequest
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	err := s.authRepo.IsEmailExist(user.Email)
	if err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if user.Telephone != "" {
		err = s.authRepo.IsPhoneExist(user.Telephone)
		if err != nil {
			log.Printf("SignupUser error: %v", err)
			return nil, apiError.GetUniqueContraintError(err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = string(hashedPassword)
	user.Password = ""

	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if apiErr := s.SendVerificationEmail(user.Email); apiErr != nil {
		// Account creation stands even when the mail cannot go out; the
		// verification email can be re-requested later.
		log.Printf("SignupUser: verification mail not sent for %s", user.Email)
	}

	createdUser, err := s.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		log.Printf("SignupUser error fetching created user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return createdUser, nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	if foundUser.IsBlocked {
		return nil, apiError.New("account is blocked", http.StatusForbidden)
	}

	roleName := models.RoleUser
	if foundUser.RoleID != uuid.Nil {
		role, err := a.authRepo.FindRoleByID(foundUser.RoleID)
		if err != nil {
			log.Printf("Error fetching role for user %s: %v", foundUser.Email, err)
			return nil, apiError.New("unable to fetch role", http.StatusInternalServerError)
		}
		roleName = role.Name
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.Email, a.Config.JWTSecret, foundUser.AdminStatus, foundUser.ID, roleName)
	if err != nil {
		log.Printf("Error generating token pair for user %s: %v", foundUser.Email, err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:           foundUser.ID,
			Fullname:     foundUser.Fullname,
			Email:        foundUser.Email,
			Telephone:    foundUser.Telephone,
			IsVerified:   foundUser.IsVerified,
			ThumbNailURL: foundUser.ThumbNailURL,
			RoleName:     roleName,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SendVerificationEmail mails the account activation link for the given
// address. The token is stateless so nothing is persisted here.
func (a *authService) SendVerificationEmail(email string) *apiError.Error {
	user, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		return apiError.ErrInternalServerError
	}

	if user.IsVerified {
		return apiError.New("account already verified", http.StatusConflict)
	}

	token, err := jwt.GenerateVerificationToken(user.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating verification token: %v", err)
		return apiError.ErrInternalServerError
	}

	link := fmt.Sprintf("%s/verify-email/%s", a.Config.BaseUrl, token)
	if err := a.mail.SendVerificationMail(user.Email, link); err != nil {
		log.Printf("error sending verification mail: %v", err)
		return apiError.New("unable to send verification email", http.StatusInternalServerError)
	}

	return nil
}

// VerifyEmail validates the emailed token and flips the account to verified.
func (a *authService) VerifyEmail(token string) error {
	email, err := jwt.ValidateVerificationToken(token, a.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired verification token", http.StatusUnauthorized)
	}

	if err := a.authRepo.MarkEmailVerified(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("error marking email verified: %v", err)
		return apiError.ErrInternalServerError
	}

	return nil
}

func (a *authService) CheckVerification(email string) (bool, error) {
	user, err := a.authRepo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apiError.New("user not found", http.StatusNotFound)
		}
		return false, apiError.ErrInternalServerError
	}
	return user.IsVerified, nil
}

func (a *authService) CheckEmailExists(email string) (bool, error) {
	err := a.authRepo.IsEmailExist(email)
	if err == nil {
		return false, nil
	}
	if err.Error() == "email already in use" {
		return true, nil
	}
	return false, apiError.ErrInternalServerError
}

func (a *authService) SendEmailForPasswordReset(user *models.ForgotPassword) *apiError.Error {
	foundUser, err := a.authRepo.FindUserByEmail(user.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return apiError.ErrInternalServerError
	}

	token, err := jwt.GeneratePasswordResetToken(foundUser.ID, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	foundUser.ResetToken = token
	if err := a.authRepo.UpdateUser(foundUser); err != nil {
		log.Printf("error persisting reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	link := fmt.Sprintf("%s/reset-password/%s", a.Config.FrontendUrl, token)
	if err := a.mail.SendResetPassword(foundUser.Email, link); err != nil {
		log.Printf("error sending reset mail: %v", err)
		return apiError.New("unable to send reset email", http.StatusInternalServerError)
	}

	return nil
}

func (a *authService) ResetPassword(user *models.ResetPassword, token string) *apiError.Error {
	if user.Password != user.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(user.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	userID, err := jwt.ValidatePasswordResetToken(token, a.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	foundUser, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return apiError.New("user not found", http.StatusNotFound)
	}
	if foundUser.ResetToken != token {
		// A newer reset request invalidates older links.
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashed, err := GenerateHashPassword(user.Password)
	if err != nil {
		log.Printf("error hashing new password: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := a.authRepo.ResetPassword(strconv.Itoa(int(userID)), hashed); err != nil {
		log.Printf("error resetting password: %v", err)
		return apiError.ErrInternalServerError
	}

	foundUser.ResetToken = ""
	if err := a.authRepo.UpdateUser(foundUser); err != nil {
		log.Printf("error clearing reset token: %v", err)
	}

	return nil
}

func (a *authService) VerifyResetToken(request *models.VerifyResetTokenRequest) *apiError.Error {
	userID, err := jwt.ValidatePasswordResetToken(request.Token, a.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	foundUser, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return apiError.New("user not found", http.StatusNotFound)
	}
	if foundUser.Email != request.Email || foundUser.ResetToken != request.Token {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	return nil
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}
	return user, nil
}

func (a *authService) EditUserProfile(userID uint, userDetails *models.EditProfileResponse) error {
	if err := a.authRepo.EditUserProfile(userID, userDetails); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("error editing profile for user %d: %v", userID, err)
		return apiError.ErrInternalServerError
	}
	return nil
}
